package models

type Testimonial struct {
	Meta
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Content string `json:"content" validate:"required"`
	Avatar  Media  `json:"avatar,omitempty"`
	// Rating is 1 to 5; 0 means not rated.
	Rating Int `json:"rating" validate:"gte=0,lte=5"`
}

func (t *Testimonial) GetSlug() string { return "" }
