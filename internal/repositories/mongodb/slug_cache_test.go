package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugCacheKeys(t *testing.T) {
	assert.Equal(t, "property:slug:sea-view-villa", propertySlugKey("sea-view-villa"))
	assert.Equal(t, "blog:slug:phuket-area-guide", blogSlugKey("phuket-area-guide"))
}

func TestSlugCacheHelpersAreNoOpsWithoutRedis(t *testing.T) {
	ctx := context.Background()

	properties := &propertyRepository{}
	assert.Empty(t, properties.currentSlug(ctx, primitive.NewObjectID()))
	properties.dropSlugCache(ctx, "sea-view-villa")

	posts := &blogRepository{}
	assert.Empty(t, posts.currentSlug(ctx, primitive.NewObjectID()))
	posts.dropSlugCache(ctx, "phuket-area-guide")
}
