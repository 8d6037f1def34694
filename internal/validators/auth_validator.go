package validators

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type InviteCreateRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin editor"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func ValidateLogin(req *LoginRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateInviteCreate(req *InviteCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateAcceptInvite(req *AcceptInviteRequest) ValidationErrors {
	return ValidateStruct(req)
}
