package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)

type BlogPost struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Slug            string              `json:"slug" bson:"slug" validate:"required"`
	Title           string              `json:"title" bson:"title" validate:"required"`
	Excerpt         string              `json:"excerpt" bson:"excerpt"`
	Body            string              `json:"body" bson:"body"`
	Status          BlogStatus          `json:"status" bson:"status"`
	Tags            []string            `json:"tags" bson:"tags"`
	CoverImage      string              `json:"cover_image" bson:"cover_image"`
	AuthorID        primitive.ObjectID  `json:"author_id" bson:"author_id"`
	AIGenerated     bool                `json:"ai_generated" bson:"ai_generated"`
	AgentDecisionID *primitive.ObjectID `json:"agent_decision_id,omitempty" bson:"agent_decision_id,omitempty"`
	MetaTitle       string              `json:"meta_title" bson:"meta_title"`
	MetaDescription string              `json:"meta_description" bson:"meta_description"`
	ViewCount       int64               `json:"view_count" bson:"view_count"`
	PublishedAt     *time.Time          `json:"published_at" bson:"published_at"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
	DeletedAt       *time.Time          `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

func (p *BlogPost) IsPublished() bool {
	return p.Status == BlogStatusPublished && p.DeletedAt == nil
}
