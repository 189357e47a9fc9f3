package handlers

import (
	"net/http"

	"github.com/atech/cms/internal/content"
	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/internal/shape"
)

// ContentHandler serves the public read API. Every response is 200 with
// a {data} envelope; missing content is null or an empty list.
type ContentHandler struct {
	src content.Source
}

func NewContentHandler(src content.Source) *ContentHandler {
	return &ContentHandler{src: src}
}

func (h *ContentHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.src.FetchHomePage(r.Context()))
}

func (h *ContentHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.src.FetchAboutPage(r.Context()))
}

func (h *ContentHandler) GlobalSettings(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.src.FetchGlobalSettings(r.Context()))
}

func (h *ContentHandler) Services(w http.ResponseWriter, r *http.Request) {
	if slug := r.URL.Query().Get("slug"); slug != "" {
		writeData(w, http.StatusOK, h.src.FetchService(r.Context(), slug))
		return
	}
	writeData(w, http.StatusOK, h.src.FetchServices(r.Context()))
}

// Projects answers in the wrapped {id, attributes} shape.
func (h *ContentHandler) Projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if slug := q.Get("slug"); slug != "" {
		p := h.src.FetchProject(r.Context(), slug)
		if p == nil {
			writeData(w, http.StatusOK, nil)
			return
		}
		e, err := shape.Wrap(p, shape.WithMediaEnvelope())
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, e)
		return
	}

	projects := h.src.FetchProjects(r.Context(), content.ProjectFilter{
		Featured: shape.Truthy(q.Get("featured")),
		Limit:    queryInt(r, "limit"),
	})
	out := make([]shape.Entity, 0, len(projects))
	for i := range projects {
		e, err := shape.Wrap(&projects[i])
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, e)
	}
	writeData(w, http.StatusOK, out)
}

func (h *ContentHandler) BlogPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if slug := q.Get("slug"); slug != "" {
		writeData(w, http.StatusOK, h.src.FetchBlogPost(r.Context(), slug))
		return
	}
	writeData(w, http.StatusOK, h.src.FetchBlogPosts(r.Context(), content.BlogFilter{
		Category: q.Get("category"),
		Limit:    queryInt(r, "limit"),
	}))
}

func (h *ContentHandler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.src.FetchTeamMembers(r.Context()))
}

func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.src.FetchTestimonials(r.Context(), queryInt(r, "limit")))
}

// FilterProjectList applies the featured, slug and limit query parameters
// to the admin project list.
func FilterProjectList(r *http.Request, items []models.Project) []models.Project {
	q := r.URL.Query()
	return content.FilterProjects(items, content.ProjectFilter{
		Slug:     q.Get("slug"),
		Featured: shape.Truthy(q.Get("featured")),
		Limit:    queryInt(r, "limit"),
	})
}
