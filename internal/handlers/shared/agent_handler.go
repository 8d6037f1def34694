package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"psmestate/internal/models"
	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
)

type AgentHandler struct {
	agentService services.AgentService
}

func NewAgentHandler(agentService services.AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// Propose runs a prompt and stores the result as a pending decision.
func (h *AgentHandler) Propose(c *gin.Context) {
	var request validators.AgentProposeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateAgentPropose(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	decision, err := h.agentService.Propose(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownProvider), errors.Is(err, services.ErrMissingTarget):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "AGENT_PROPOSE_FAILED", "Failed to generate proposal: "+err.Error())
		}
		return
	}

	utils.CreatedResponse(c, "Proposal created successfully", decision)
}

// Review approves or rejects a pending decision.
func (h *AgentHandler) Review(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	reviewerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.AgentReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateAgentReview(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	decision, err := h.agentService.Review(c.Request.Context(), id, reviewerID, &request)
	if err != nil {
		if errors.Is(err, services.ErrDecisionNotReviewable) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "AGENT_REVIEW_FAILED", "Failed to review proposal: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Proposal reviewed successfully", decision)
}

// Execute applies an approved proposal.
func (h *AgentHandler) Execute(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	decision, err := h.agentService.Execute(c.Request.Context(), id, actorID)
	if err != nil {
		if errors.Is(err, services.ErrDecisionNotExecutable) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "AGENT_EXECUTE_FAILED", "Failed to execute proposal: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Proposal executed successfully", decision)
}

// Rollback undoes an executed proposal.
func (h *AgentHandler) Rollback(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	decision, err := h.agentService.Rollback(c.Request.Context(), id, actorID)
	if err != nil {
		if errors.Is(err, services.ErrDecisionNotReversible) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "AGENT_ROLLBACK_FAILED", "Failed to roll back proposal: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Proposal rolled back successfully", decision)
}

func (h *AgentHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	decision, err := h.agentService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "Decision")
		return
	}

	utils.SuccessResponse(c, "Decision retrieved successfully", decision)
}

func (h *AgentHandler) List(c *gin.Context) {
	status := models.AgentDecisionStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	decisions, total, err := h.agentService.List(c.Request.Context(), status, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "AGENT_FETCH_FAILED", "Failed to list decisions: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Decisions retrieved successfully", decisions, params, total)
}
