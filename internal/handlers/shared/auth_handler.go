package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request validators.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateLogin(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, services.ErrAccountDisabled) {
			utils.ForbiddenResponse(c)
			return
		}
		utils.ErrorResponse(c, http.StatusUnauthorized, "LOGIN_FAILED", utils.ErrInvalidCredentials)
		return
	}

	utils.SuccessResponse(c, "Logged in successfully", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request validators.RefreshTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "REFRESH_FAILED", utils.ErrInvalidToken)
		return
	}

	utils.SuccessResponse(c, "Token refreshed successfully", tokens)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.NotFoundResponse(c, "User")
		return
	}

	utils.SuccessResponse(c, "User retrieved successfully", user)
}

// CreateInvite lets an admin invite a new dashboard user.
func (h *AuthHandler) CreateInvite(c *gin.Context) {
	inviterID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.InviteCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateInviteCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	invite, err := h.authService.CreateInvite(c.Request.Context(), inviterID, &request)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "INVITE_CREATE_FAILED", "Failed to create invite: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Invite created successfully", invite)
}

// AcceptInvite turns a valid invite token into an account. Public.
func (h *AuthHandler) AcceptInvite(c *gin.Context) {
	var request validators.AcceptInviteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateAcceptInvite(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	user, tokens, err := h.authService.AcceptInvite(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInviteNotUsable):
			utils.GoneResponse(c, "INVITE_EXPIRED", err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "INVITE_ACCEPT_FAILED", "Failed to accept invite: "+err.Error())
		}
		return
	}

	utils.CreatedResponse(c, "Account created successfully", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *AuthHandler) ListInvites(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	invites, total, err := h.authService.ListInvites(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "INVITE_FETCH_FAILED", "Failed to list invites: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Invites retrieved successfully", invites, params, total)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.authService.ListUsers(c.Request.Context(), params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "USER_FETCH_FAILED", "Failed to list users: "+err.Error())
		return
	}

	utils.PaginatedResponse(c, "Users retrieved successfully", users, params, total)
}

// SetUserActive enables or disables a dashboard account.
func (h *AuthHandler) SetUserActive(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.SetUserActive(c.Request.Context(), id, *request.Active); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "User updated successfully", nil)
}
