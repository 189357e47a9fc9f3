package types

// DataResponse is the envelope of every successful content and admin
// response. Data is always present, null included.
type DataResponse struct {
	Data any `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}
