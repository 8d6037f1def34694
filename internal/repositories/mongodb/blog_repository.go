package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/pkg/cache"
)

type blogRepository struct {
	collection *mongo.Collection
	cache      *cache.RedisCache
}

func NewBlogRepository(db *mongo.Database, redis *cache.RedisCache) interfaces.BlogRepository {
	return &blogRepository{
		collection: db.Collection("blog_posts"),
		cache:      redis,
	}
}

func blogSlugKey(slug string) string {
	return utils.CacheBlogPrefix + "slug:" + slug
}

func (r *blogRepository) currentSlug(ctx context.Context, id primitive.ObjectID) string {
	if r.cache == nil {
		return ""
	}

	var doc struct {
		Slug string `bson:"slug"`
	}
	opts := options.FindOne().SetProjection(bson.M{"slug": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return ""
	}
	return doc.Slug
}

func (r *blogRepository) dropSlugCache(ctx context.Context, slug string) {
	if r.cache == nil || slug == "" {
		return
	}
	_ = r.cache.Delete(ctx, blogSlugKey(slug))
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	if post.Status == "" {
		post.Status = models.BlogStatusDraft
	}

	_, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("blog post not found")
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	return &post, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	// Public post pages are slug lookups, so published posts read through
	// the cache. Writes invalidate; the view counter may lag until the TTL.
	if r.cache != nil {
		var cached models.BlogPost
		if err := r.cache.Get(ctx, blogSlugKey(slug), &cached); err == nil {
			return &cached, nil
		}
	}

	var post models.BlogPost
	err := r.collection.FindOne(ctx, notDeleted(bson.M{"slug": slug})).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("blog post not found")
		}
		return nil, fmt.Errorf("failed to get blog post by slug: %w", err)
	}

	if r.cache != nil && post.IsPublished() {
		_ = r.cache.Set(ctx, blogSlugKey(post.Slug), &post, utils.CacheSlugTTL)
	}

	return &post, nil
}

func (r *blogRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	// Capture the slug before the write in case the update renames it.
	oldSlug := r.currentSlug(ctx, id)

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	r.dropSlugCache(ctx, oldSlug)
	if slug, ok := updates["slug"].(string); ok {
		r.dropSlugCache(ctx, slug)
	}

	return nil
}

func (r *blogRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	slug := r.currentSlug(ctx, id)

	now := time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	r.dropSlugCache(ctx, slug)

	return nil
}

func (r *blogRepository) ListPublished(ctx context.Context, tag string, params *utils.PaginationParams) ([]*models.BlogPost, int64, error) {
	query := notDeleted(bson.M{"status": models.BlogStatusPublished})
	if tag != "" {
		query["tags"] = tag
	}

	if search := params.GetSearchFilter([]string{"title", "excerpt"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	return r.findPage(ctx, query, params)
}

func (r *blogRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.BlogPost, int64, error) {
	query := notDeleted(bson.M{})

	if search := params.GetSearchFilter([]string{"title", "excerpt"}); len(search) > 0 {
		query = bson.M{"$and": []bson.M{query, search}}
	}

	return r.findPage(ctx, query, params)
}

func (r *blogRepository) IncrementViewCount(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func (r *blogRepository) findPage(ctx context.Context, query bson.M, params *utils.PaginationParams) ([]*models.BlogPost, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.BlogPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode blog posts: %w", err)
	}

	return posts, total, nil
}
