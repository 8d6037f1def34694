package validators

type AgentProposeRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=blog_draft listing_copy seo_update market_research"`
	Provider string `json:"provider" validate:"omitempty,oneof=openai perplexity"`
	Model    string `json:"model" validate:"omitempty,max=100"`
	Prompt   string `json:"prompt" validate:"required,max=8000"`
	TargetID string `json:"target_id" validate:"omitempty,object_id"`
}

type AgentReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Note     string `json:"note" validate:"omitempty,max=2000"`
}

func ValidateAgentPropose(req *AgentProposeRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateAgentReview(req *AgentReviewRequest) ValidationErrors {
	return ValidateStruct(req)
}
