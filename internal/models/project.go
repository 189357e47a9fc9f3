package models

// Project is a portfolio entry.
type Project struct {
	Meta
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required"`
	Description string     `json:"description"`
	Featured    Flag       `json:"featured"`
	TechStack   StringList `json:"techStack"`
	ProjectURL  string     `json:"projectUrl,omitempty"`
	GithubURL   string     `json:"githubUrl,omitempty"`
	Thumbnail   Media      `json:"thumbnail,omitempty"`
	Images      MediaList  `json:"images"`
}

func (p *Project) GetSlug() string { return p.Slug }
