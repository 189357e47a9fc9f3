package models

import "encoding/json"

// SocialLinks holds profile URLs. Team members use linkedin, twitter and
// github; the site settings use all five.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// UnmarshalJSON keeps the string-valued links of an object. Any other
// value, such as a placeholder string, decodes to no links.
func (s *SocialLinks) UnmarshalJSON(b []byte) error {
	*s = SocialLinks{}
	var m map[string]any
	if json.Unmarshal(b, &m) != nil {
		return nil
	}
	link := func(k string) string {
		v, _ := m[k].(string)
		return v
	}
	s.Facebook = link("facebook")
	s.Twitter = link("twitter")
	s.LinkedIn = link("linkedin")
	s.GitHub = link("github")
	s.Instagram = link("instagram")
	return nil
}

type TeamMember struct {
	Meta
	Name        string      `json:"name" validate:"required"`
	Role        string      `json:"role"`
	Bio         string      `json:"bio"`
	Avatar      Media       `json:"avatar,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// GetSlug is empty: team members are addressed by id only.
func (m *TeamMember) GetSlug() string { return "" }
