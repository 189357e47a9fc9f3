package models

// Service is an offering shown on the services pages. Icon is one of the
// icon names the frontend knows (e.g. "code", "mobile", "cloud").
type Service struct {
	Meta
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

func (s *Service) GetSlug() string { return s.Slug }
