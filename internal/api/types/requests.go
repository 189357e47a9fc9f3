package types

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}
