package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/logger"
	"psmestate/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New(utils.ErrInvalidCredentials)
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInviteNotUsable    = errors.New(utils.ErrInviteExpired)
	ErrEmailTaken         = errors.New(utils.ErrUserExists)
)

type AuthService interface {
	Login(ctx context.Context, request *validators.LoginRequest) (*models.User, *utils.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)

	CreateInvite(ctx context.Context, inviterID primitive.ObjectID, request *validators.InviteCreateRequest) (*models.Invite, error)
	AcceptInvite(ctx context.Context, request *validators.AcceptInviteRequest) (*models.User, *utils.TokenPair, error)
	ListInvites(ctx context.Context, params *utils.PaginationParams) ([]*models.Invite, int64, error)

	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	SetUserActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

type authService struct {
	userRepo   interfaces.UserRepository
	inviteRepo interfaces.InviteRepository
	mail       *mailer.Mailer
	jwtSecret  string
	inviteTTL  time.Duration
	siteURL    string
	logger     *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	inviteRepo interfaces.InviteRepository,
	mail *mailer.Mailer,
	jwtSecret string,
	inviteTTL time.Duration,
	siteURL string,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		mail:       mail,
		jwtSecret:  jwtSecret,
		inviteTTL:  inviteTTL,
		siteURL:    siteURL,
		logger:     log,
	}
}

func (s *authService) Login(ctx context.Context, request *validators.LoginRequest) (*models.User, *utils.TokenPair, error) {
	email := utils.NormalizeEmail(request.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and bad password.
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, nil, ErrAccountDisabled
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{
		"last_login_at": time.Now(),
	}); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to record last login")
	}

	s.logger.WithUserID(user.ID).Info("User logged in")

	return user, tokens, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	// Re-check the account so disabling a user also kills refresh.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	return utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
}

func (s *authService) CreateInvite(ctx context.Context, inviterID primitive.ObjectID, request *validators.InviteCreateRequest) (*models.Invite, error) {
	email := utils.NormalizeEmail(request.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	invite := &models.Invite{
		Email:     email,
		Token:     utils.GenerateInviteToken(),
		Role:      models.UserRole(request.Role),
		InvitedBy: inviterID,
		ExpiresAt: time.Now().Add(s.inviteTTL),
	}

	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.logger.LogAdminAction(inviterID, "invite_created", map[string]interface{}{
		"email": utils.MaskEmail(email),
		"role":  request.Role,
	})

	s.sendInviteEmail(invite)

	return invite, nil
}

func (s *authService) AcceptInvite(ctx context.Context, request *validators.AcceptInviteRequest) (*models.User, *utils.TokenPair, error) {
	invite, err := s.inviteRepo.GetByToken(ctx, request.Token)
	if err != nil {
		return nil, nil, ErrInviteNotUsable
	}
	if !invite.IsUsable(time.Now()) {
		return nil, nil, ErrInviteNotUsable
	}

	if _, err := s.userRepo.GetByEmail(ctx, invite.Email); err == nil {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        invite.Email,
		Name:         request.Name,
		PasswordHash: string(hash),
		Role:         invite.Role,
		Active:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if err := s.inviteRepo.MarkUsed(ctx, invite.ID); err != nil {
		s.logger.WithError(err).Warn("Failed to mark invite as used")
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithUserID(user.ID).Info("Invite accepted, user created")

	return user, tokens, nil
}

func (s *authService) ListInvites(ctx context.Context, params *utils.PaginationParams) ([]*models.Invite, int64, error) {
	return s.inviteRepo.List(ctx, params)
}

func (s *authService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *authService) SetUserActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return s.userRepo.Update(ctx, id, map[string]interface{}{"active": active})
}

func (s *authService) sendInviteEmail(invite *models.Invite) {
	if s.mail == nil || !s.mail.Enabled() {
		return
	}

	link := s.siteURL + "/admin/accept-invite?token=" + invite.Token
	body := "<p>You have been invited to the " + utils.AppName + " admin dashboard as " +
		string(invite.Role) + ".</p><p><a href=\"" + link + "\">Accept the invitation</a> " +
		"within " + s.inviteTTL.String() + ".</p>"

	if err := s.mail.Send([]string{invite.Email}, "You're invited to "+utils.AppName, body); err != nil {
		s.logger.WithError(err).Warn("Failed to send invite email")
	}
}
