package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/cache"
	"psmestate/pkg/logger"
	"psmestate/pkg/search"
)

var ErrSlugTaken = errors.New("slug is already in use")

type BlogService interface {
	Create(ctx context.Context, authorID primitive.ObjectID, request *validators.BlogCreateRequest) (*models.BlogPost, error)
	Update(ctx context.Context, id primitive.ObjectID, request *validators.BlogUpdateRequest) (*models.BlogPost, error)
	Publish(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Archive(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListPublished(ctx context.Context, tag string, params *utils.PaginationParams) ([]*models.BlogPost, int64, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.BlogPost, int64, error)
	RecordView(ctx context.Context, id primitive.ObjectID, viewerKey string) (bool, error)
}

type blogService struct {
	blogRepo interfaces.BlogRepository
	redis    *cache.RedisCache
	views    *viewCache
	viewTTL  time.Duration
	indexing *search.IndexingClient
	logger   *logger.Logger
}

func NewBlogService(
	blogRepo interfaces.BlogRepository,
	redis *cache.RedisCache,
	viewTTL time.Duration,
	indexing *search.IndexingClient,
	log *logger.Logger,
) BlogService {
	if viewTTL <= 0 {
		viewTTL = utils.ViewDedupTTL
	}
	return &blogService{
		blogRepo: blogRepo,
		redis:    redis,
		views:    newViewCache(viewTTL),
		viewTTL:  viewTTL,
		indexing: indexing,
		logger:   log,
	}
}

func (s *blogService) Create(ctx context.Context, authorID primitive.ObjectID, request *validators.BlogCreateRequest) (*models.BlogPost, error) {
	slug := request.Slug
	if slug == "" {
		slug = utils.Slugify(request.Title)
	}
	if err := s.ensureSlugFree(ctx, slug, primitive.NilObjectID); err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		Slug:            slug,
		Title:           request.Title,
		Excerpt:         request.Excerpt,
		Body:            request.Content,
		Status:          models.BlogStatusDraft,
		Tags:            request.Tags,
		CoverImage:      request.CoverImage,
		AuthorID:        authorID,
		MetaTitle:       request.MetaTitle,
		MetaDescription: request.MetaDescription,
	}

	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *blogService) Update(ctx context.Context, id primitive.ObjectID, request *validators.BlogUpdateRequest) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if request.Title != nil {
		updates["title"] = *request.Title
	}
	if request.Slug != nil && *request.Slug != post.Slug {
		if err := s.ensureSlugFree(ctx, *request.Slug, id); err != nil {
			return nil, err
		}
		updates["slug"] = *request.Slug
	}
	if request.Excerpt != nil {
		updates["excerpt"] = *request.Excerpt
	}
	if request.Content != nil {
		updates["body"] = *request.Content
	}
	if request.CoverImage != nil {
		updates["cover_image"] = *request.CoverImage
	}
	if request.Tags != nil {
		updates["tags"] = request.Tags
	}
	if request.MetaTitle != nil {
		updates["meta_title"] = *request.MetaTitle
	}
	if request.MetaDescription != nil {
		updates["meta_description"] = *request.MetaDescription
	}
	if request.Status != nil {
		status := models.BlogStatus(*request.Status)
		updates["status"] = status
		if status == models.BlogStatusPublished && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) > 0 {
		if err := s.blogRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.IsPublished() && len(updates) > 0 {
		s.notifySearch(ctx, updated, false)
	}

	return updated, nil
}

func (s *blogService) Publish(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.IsPublished() {
		return post, nil
	}

	updates := map[string]interface{}{"status": models.BlogStatusPublished}
	if post.PublishedAt == nil {
		updates["published_at"] = time.Now()
	}

	if err := s.blogRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	published, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifySearch(ctx, published, false)
	return published, nil
}

func (s *blogService) Archive(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasPublished := post.IsPublished()
	if err := s.blogRepo.Update(ctx, id, map[string]interface{}{"status": models.BlogStatusArchived}); err != nil {
		return nil, err
	}

	if wasPublished {
		s.notifySearch(ctx, post, true)
	}

	return s.blogRepo.GetByID(ctx, id)
}

func (s *blogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blogRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	if post.IsPublished() {
		s.notifySearch(ctx, post, true)
	}

	return nil
}

func (s *blogService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	return s.blogRepo.GetByID(ctx, id)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.blogRepo.GetBySlug(ctx, slug)
}

func (s *blogService) ListPublished(ctx context.Context, tag string, params *utils.PaginationParams) ([]*models.BlogPost, int64, error) {
	return s.blogRepo.ListPublished(ctx, tag, params)
}

func (s *blogService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.BlogPost, int64, error) {
	return s.blogRepo.ListAll(ctx, params)
}

// RecordView counts a view at most once per viewer within the de-dup window.
func (s *blogService) RecordView(ctx context.Context, id primitive.ObjectID, viewerKey string) (bool, error) {
	key := utils.CacheViewPrefix + "blog:" + viewerKey + ":" + id.Hex()

	firstSight := false
	if s.redis != nil {
		ok, err := s.redis.SetNX(ctx, key, "1", s.viewTTL)
		if err != nil {
			s.logger.WithError(err).Warn("Redis unavailable for view de-dup, using in-memory fallback")
			firstSight = s.views.FirstSeen(key, time.Now())
		} else {
			firstSight = ok
		}
	} else {
		firstSight = s.views.FirstSeen(key, time.Now())
	}

	if !firstSight {
		return false, nil
	}

	if err := s.blogRepo.IncrementViewCount(ctx, id); err != nil {
		return false, err
	}

	return true, nil
}

func (s *blogService) ensureSlugFree(ctx context.Context, slug string, selfID primitive.ObjectID) error {
	existing, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}
	return nil
}

func (s *blogService) notifySearch(ctx context.Context, post *models.BlogPost, deleted bool) {
	if s.indexing == nil {
		return
	}

	pageURL := s.indexing.PageURL("/blog/" + post.Slug)

	var err error
	if deleted {
		err = s.indexing.NotifyDeleted(ctx, pageURL)
	} else {
		err = s.indexing.NotifyUpdated(ctx, pageURL)
	}
	if err != nil {
		s.logger.WithError(err).WithField("url", pageURL).Warn("Search indexing notification failed")
	}

	if err := s.indexing.PingSitemap(ctx); err != nil {
		s.logger.WithError(err).Warn("Sitemap ping failed")
	}
}
