package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/ai"
	"psmestate/pkg/logger"
	"psmestate/pkg/websocket"
)

var (
	ErrUnknownProvider       = errors.New("unknown AI provider")
	ErrDecisionNotReviewable = errors.New("decision is not pending review")
	ErrDecisionNotExecutable = errors.New("only approved decisions can be executed")
	ErrDecisionNotReversible = errors.New("only executed decisions can be rolled back")
	ErrMissingTarget         = errors.New("decision kind requires a target")
)

var systemPrompts = map[models.AgentDecisionKind]string{
	models.AgentKindBlogDraft: "You write blog posts for a Phuket real estate agency. " +
		"Return the post body in Markdown with a first-line H1 title.",
	models.AgentKindListingCopy: "You write property listing descriptions for a Phuket real estate agency. " +
		"Return only the new description text.",
	models.AgentKindSEOUpdate: "You write SEO meta descriptions for a Phuket real estate website. " +
		"Return only the meta description, 170 characters or less.",
	models.AgentKindMarketResearch: "You research the Phuket property market. " +
		"Answer with current figures and cite sources.",
}

type AgentService interface {
	Propose(ctx context.Context, request *validators.AgentProposeRequest) (*models.AgentDecision, error)
	Review(ctx context.Context, id, reviewerID primitive.ObjectID, request *validators.AgentReviewRequest) (*models.AgentDecision, error)
	Execute(ctx context.Context, id, actorID primitive.ObjectID) (*models.AgentDecision, error)
	Rollback(ctx context.Context, id, actorID primitive.ObjectID) (*models.AgentDecision, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AgentDecision, error)
	List(ctx context.Context, status models.AgentDecisionStatus, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

type agentService struct {
	decisionRepo interfaces.AgentDecisionRepository
	blogRepo     interfaces.BlogRepository
	propertyRepo interfaces.PropertyRepository
	providers    map[string]ai.Provider
	events       *websocket.Handler
	logger       *logger.Logger
}

func NewAgentService(
	decisionRepo interfaces.AgentDecisionRepository,
	blogRepo interfaces.BlogRepository,
	propertyRepo interfaces.PropertyRepository,
	providers []ai.Provider,
	events *websocket.Handler,
	log *logger.Logger,
) AgentService {
	byName := make(map[string]ai.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &agentService{
		decisionRepo: decisionRepo,
		blogRepo:     blogRepo,
		propertyRepo: propertyRepo,
		providers:    byName,
		events:       events,
		logger:       log,
	}
}

// Propose runs the prompt against the chosen provider and stores the result
// as a pending decision. Nothing is applied until an admin approves and
// executes it.
func (s *agentService) Propose(ctx context.Context, request *validators.AgentProposeRequest) (*models.AgentDecision, error) {
	kind := models.AgentDecisionKind(request.Kind)

	providerName := request.Provider
	if providerName == "" {
		providerName = s.defaultProvider(kind)
	}
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerName)
	}

	var targetID *primitive.ObjectID
	if request.TargetID != "" {
		id, err := primitive.ObjectIDFromHex(request.TargetID)
		if err != nil {
			return nil, fmt.Errorf("invalid target ID: %w", err)
		}
		targetID = &id
	}
	if targetID == nil && (kind == models.AgentKindListingCopy || kind == models.AgentKindSEOUpdate) {
		return nil, ErrMissingTarget
	}

	completionCtx, cancel := context.WithTimeout(ctx, utils.AgentRequestTimeout)
	defer cancel()

	response, err := provider.Complete(completionCtx, &ai.CompletionRequest{
		Model:  request.Model,
		System: systemPrompts[kind],
		Prompt: request.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	decision := &models.AgentDecision{
		Kind:         kind,
		Title:        proposalTitle(kind, response.Text),
		Prompt:       request.Prompt,
		Provider:     provider.Name(),
		Model:        response.Model,
		Response:     response.Text,
		Proposal:     response.Text,
		TargetID:     targetID,
		PromptTokens: response.PromptTokens,
		OutputTokens: response.OutputTokens,
	}

	if err := s.decisionRepo.Create(ctx, decision); err != nil {
		return nil, err
	}

	s.logger.LogAgentDecision(decision.ID, "proposed", provider.Name())
	s.publishEvent(utils.EventAgentProposed, decision)

	return decision, nil
}

func (s *agentService) Review(ctx context.Context, id, reviewerID primitive.ObjectID, request *validators.AgentReviewRequest) (*models.AgentDecision, error) {
	decision, err := s.decisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := models.AgentDecisionStatus(request.Decision)
	if !decision.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s", ErrDecisionNotReviewable, decision.Status)
	}

	updates := map[string]interface{}{
		"status":      next,
		"reviewed_by": reviewerID,
		"review_note": request.Note,
		"reviewed_at": time.Now(),
	}
	if err := s.decisionRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logger.LogAgentDecision(id, string(next), reviewerID.Hex())

	reviewed, err := s.decisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(utils.EventAgentReviewed, reviewed)

	return reviewed, nil
}

// Execute applies an approved proposal and records enough state to undo it.
func (s *agentService) Execute(ctx context.Context, id, actorID primitive.ObjectID) (*models.AgentDecision, error) {
	decision, err := s.decisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !decision.CanTransitionTo(models.AgentStatusExecuted) {
		return nil, fmt.Errorf("%w: %s", ErrDecisionNotExecutable, decision.Status)
	}

	rollbackRef, err := s.apply(ctx, decision, actorID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":       models.AgentStatusExecuted,
		"rollback_ref": rollbackRef,
		"executed_at":  time.Now(),
	}
	if err := s.decisionRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logger.LogAgentDecision(id, "executed", actorID.Hex())

	executed, err := s.decisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(utils.EventAgentExecuted, executed)

	return executed, nil
}

func (s *agentService) Rollback(ctx context.Context, id, actorID primitive.ObjectID) (*models.AgentDecision, error) {
	decision, err := s.decisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !decision.CanTransitionTo(models.AgentStatusRolledBack) {
		return nil, fmt.Errorf("%w: %s", ErrDecisionNotReversible, decision.Status)
	}

	if err := s.revert(ctx, decision); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":         models.AgentStatusRolledBack,
		"rolled_back_at": time.Now(),
	}
	if err := s.decisionRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logger.LogAgentDecision(id, "rolled_back", actorID.Hex())

	return s.decisionRepo.GetByID(ctx, id)
}

func (s *agentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AgentDecision, error) {
	return s.decisionRepo.GetByID(ctx, id)
}

func (s *agentService) List(ctx context.Context, status models.AgentDecisionStatus, params *utils.PaginationParams) ([]*models.AgentDecision, int64, error) {
	if status != "" {
		return s.decisionRepo.GetByStatus(ctx, status, params)
	}
	return s.decisionRepo.List(ctx, params)
}

func (s *agentService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	return s.decisionRepo.CountByStatus(ctx)
}

// apply executes one proposal kind and returns the rollback reference.
func (s *agentService) apply(ctx context.Context, decision *models.AgentDecision, actorID primitive.ObjectID) (string, error) {
	switch decision.Kind {
	case models.AgentKindBlogDraft:
		title, body := splitDraft(decision.Proposal)
		post := &models.BlogPost{
			Slug:            utils.Slugify(title),
			Title:           title,
			Body:            body,
			Status:          models.BlogStatusDraft,
			AuthorID:        actorID,
			AIGenerated:     true,
			AgentDecisionID: &decision.ID,
		}
		if err := s.blogRepo.Create(ctx, post); err != nil {
			return "", err
		}
		return post.ID.Hex(), nil

	case models.AgentKindListingCopy:
		property, err := s.propertyRepo.GetByID(ctx, *decision.TargetID)
		if err != nil {
			return "", err
		}
		if err := s.propertyRepo.Update(ctx, property.ID, map[string]interface{}{
			"description": strings.TrimSpace(decision.Proposal),
		}); err != nil {
			return "", err
		}
		return property.Description, nil

	case models.AgentKindSEOUpdate:
		post, err := s.blogRepo.GetByID(ctx, *decision.TargetID)
		if err != nil {
			return "", err
		}
		if err := s.blogRepo.Update(ctx, post.ID, map[string]interface{}{
			"meta_description": strings.TrimSpace(decision.Proposal),
		}); err != nil {
			return "", err
		}
		return post.MetaDescription, nil

	case models.AgentKindMarketResearch:
		// Research output is informational; executing just acknowledges it.
		return "", nil

	default:
		return "", fmt.Errorf("unsupported decision kind: %s", decision.Kind)
	}
}

func (s *agentService) revert(ctx context.Context, decision *models.AgentDecision) error {
	switch decision.Kind {
	case models.AgentKindBlogDraft:
		postID, err := primitive.ObjectIDFromHex(decision.RollbackRef)
		if err != nil {
			return fmt.Errorf("invalid rollback reference: %w", err)
		}
		return s.blogRepo.SoftDelete(ctx, postID)

	case models.AgentKindListingCopy:
		return s.propertyRepo.Update(ctx, *decision.TargetID, map[string]interface{}{
			"description": decision.RollbackRef,
		})

	case models.AgentKindSEOUpdate:
		return s.blogRepo.Update(ctx, *decision.TargetID, map[string]interface{}{
			"meta_description": decision.RollbackRef,
		})

	case models.AgentKindMarketResearch:
		return nil

	default:
		return fmt.Errorf("unsupported decision kind: %s", decision.Kind)
	}
}

// defaultProvider routes research to the web-grounded backend and everything
// else to the content generator.
func (s *agentService) defaultProvider(kind models.AgentDecisionKind) string {
	if kind == models.AgentKindMarketResearch {
		if _, ok := s.providers["perplexity"]; ok {
			return "perplexity"
		}
	}
	return "openai"
}

func (s *agentService) publishEvent(event string, decision *models.AgentDecision) {
	if s.events == nil {
		return
	}
	s.events.PublishAgentEvent(event, map[string]interface{}{
		"decision_id": decision.ID.Hex(),
		"kind":        string(decision.Kind),
		"status":      string(decision.Status),
		"title":       decision.Title,
	})
}

// splitDraft pulls the title off a Markdown draft, treating a leading H1 as
// the title and the rest as the body.
func splitDraft(text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "# ") {
		if idx := strings.Index(trimmed, "\n"); idx > 0 {
			return strings.TrimSpace(trimmed[2:idx]), strings.TrimSpace(trimmed[idx+1:])
		}
		return strings.TrimSpace(trimmed[2:]), ""
	}

	title := trimmed
	if idx := strings.Index(trimmed, "\n"); idx > 0 {
		title = strings.TrimSpace(trimmed[:idx])
	}
	if utf8.RuneCountInString(title) > 120 {
		title = string([]rune(title)[:120])
	}
	return title, trimmed
}

func proposalTitle(kind models.AgentDecisionKind, text string) string {
	title, _ := splitDraft(text)
	if title == "" {
		return string(kind)
	}
	return title
}
