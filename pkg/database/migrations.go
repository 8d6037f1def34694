package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
	Down        func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	err := m.createMigrationsCollection()
	if err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) Down(targetVersion int) error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version <= currentVersion && migration.Version > targetVersion {
			log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)

			err := migration.Down(m.db)
			if err != nil {
				return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
			}

			previousVersion := targetVersion
			if i > 0 {
				previousVersion = m.migrations[i-1].Version
			}

			err = m.updateVersion(previousVersion)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d reverted successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == "migrations" {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, "migrations")
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users collection with indexes",
			Up:          createUsersIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("users").Drop(context.Background())
			},
		},
		{
			Version:     2,
			Description: "Create properties collection with indexes",
			Up:          createPropertiesIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("properties").Drop(context.Background())
			},
		},
		{
			Version:     3,
			Description: "Create bookings collection with indexes",
			Up:          createBookingsIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("bookings").Drop(context.Background())
			},
		},
		{
			Version:     4,
			Description: "Create blog_posts collection with indexes",
			Up:          createBlogPostsIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("blog_posts").Drop(context.Background())
			},
		},
		{
			Version:     5,
			Description: "Create pois collection with indexes",
			Up:          createPOIsIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("pois").Drop(context.Background())
			},
		},
		{
			Version:     6,
			Description: "Create tm30_registrations collection with indexes",
			Up:          createTM30Indexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("tm30_registrations").Drop(context.Background())
			},
		},
		{
			Version:     7,
			Description: "Create agent_decisions collection with indexes",
			Up:          createAgentDecisionsIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("agent_decisions").Drop(context.Background())
			},
		},
		{
			Version:     8,
			Description: "Create marketing collections with indexes",
			Up:          createMarketingIndexes,
			Down: func(db *mongo.Database) error {
				ctx := context.Background()
				for _, name := range []string{"subscribers", "price_alerts", "utm_visits", "inquiries", "invites"} {
					if err := db.Collection(name).Drop(ctx); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func createUsersIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection("users").Indexes().CreateMany(ctx, indexes)
	return err
}

func createPropertiesIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "listing_type", Value: 1}, {Key: "city", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "monthly_price", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "featured", Value: -1}, {Key: "published_at", Value: -1}},
		},
	}

	_, err := db.Collection("properties").Indexes().CreateMany(ctx, indexes)
	return err
}

func createBookingsIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "check_in", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "guest_email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection("bookings").Indexes().CreateMany(ctx, indexes)
	return err
}

func createBlogPostsIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
	}

	_, err := db.Collection("blog_posts").Indexes().CreateMany(ctx, indexes)
	return err
}

func createPOIsIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "category", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "property_id", Value: 1}, {Key: "place_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := db.Collection("pois").Indexes().CreateMany(ctx, indexes)
	return err
}

func createTM30Indexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "dispatch_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := db.Collection("tm30_registrations").Indexes().CreateMany(ctx, indexes)
	return err
}

func createAgentDecisionsIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "kind", Value: 1}},
		},
	}

	_, err := db.Collection("agent_decisions").Indexes().CreateMany(ctx, indexes)
	return err
}

func createMarketingIndexes(db *mongo.Database) error {
	ctx := context.Background()

	_, err := db.Collection("subscribers").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("price_alerts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}, {Key: "city", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("utm_visits").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "utm_source", Value: 1}, {Key: "utm_medium", Value: 1}, {Key: "utm_campaign", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("inquiries").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("invites").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	})
	return err
}
