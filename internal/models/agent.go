package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AgentDecisionStatus string
type AgentDecisionKind string

const (
	AgentStatusPending    AgentDecisionStatus = "pending"
	AgentStatusApproved   AgentDecisionStatus = "approved"
	AgentStatusRejected   AgentDecisionStatus = "rejected"
	AgentStatusExecuted   AgentDecisionStatus = "executed"
	AgentStatusRolledBack AgentDecisionStatus = "rolled_back"

	AgentKindBlogDraft       AgentDecisionKind = "blog_draft"
	AgentKindListingCopy     AgentDecisionKind = "listing_copy"
	AgentKindSEOUpdate       AgentDecisionKind = "seo_update"
	AgentKindMarketResearch  AgentDecisionKind = "market_research"
)

// AgentDecision is one AI-proposed change awaiting human review. Every status
// move is an explicit admin action; nothing executes on its own.
type AgentDecision struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Kind         AgentDecisionKind   `json:"kind" bson:"kind" validate:"required"`
	Status       AgentDecisionStatus `json:"status" bson:"status"`
	Title        string              `json:"title" bson:"title"`
	Prompt       string              `json:"prompt" bson:"prompt"`
	Provider     string              `json:"provider" bson:"provider"`
	Model        string              `json:"model" bson:"model"`
	Response     string              `json:"response" bson:"response"`
	Proposal     string              `json:"proposal" bson:"proposal"` // the change to apply, as a diff or document
	TargetID     *primitive.ObjectID `json:"target_id,omitempty" bson:"target_id,omitempty"`
	PromptTokens int                 `json:"prompt_tokens" bson:"prompt_tokens"`
	OutputTokens int                 `json:"output_tokens" bson:"output_tokens"`
	ReviewedBy   *primitive.ObjectID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewNote   string              `json:"review_note" bson:"review_note"`
	RollbackRef  string              `json:"rollback_ref" bson:"rollback_ref"` // inverse of the applied proposal
	ReviewedAt   *time.Time          `json:"reviewed_at" bson:"reviewed_at"`
	ExecutedAt   *time.Time          `json:"executed_at" bson:"executed_at"`
	RolledBackAt *time.Time          `json:"rolled_back_at" bson:"rolled_back_at"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

var agentTransitions = map[AgentDecisionStatus][]AgentDecisionStatus{
	AgentStatusPending:  {AgentStatusApproved, AgentStatusRejected},
	AgentStatusApproved: {AgentStatusExecuted},
	AgentStatusExecuted: {AgentStatusRolledBack},
}

func (d *AgentDecision) CanTransitionTo(next AgentDecisionStatus) bool {
	for _, allowed := range agentTransitions[d.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
