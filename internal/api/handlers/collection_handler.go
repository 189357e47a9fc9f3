package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atech/cms/internal/api/types"
	"github.com/atech/cms/internal/api/validators"
	"github.com/atech/cms/internal/repository"
	appErr "github.com/atech/cms/pkg/errors"
)

// ListFilter narrows an admin list using the request's query parameters.
type ListFilter[T any] func(r *http.Request, items []T) []T

// CollectionHandler is the admin CRUD surface of one collection.
type CollectionHandler[T any] struct {
	label    string
	repo     *repository.Repo[T]
	validate *validator.Validate
	filter   ListFilter[T]
}

// NewCollectionHandler builds the handler; label names a single record in
// error messages ("Project not found").
func NewCollectionHandler[T any](label string, repo *repository.Repo[T], v *validator.Validate, filter ListFilter[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{label: label, repo: repo, validate: v, filter: filter}
}

func (h *CollectionHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items := h.repo.List(r.Context())
	if h.filter != nil {
		items = h.filter(r, items)
	}
	writeData(w, http.StatusOK, items)
}

func (h *CollectionHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeErrorStr(w, http.StatusNotFound, h.label+" not found")
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (h *CollectionHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	rec := new(T)
	if err := json.Unmarshal(body, rec); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(rec); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: validators.Message(err), Code: string(appErr.CodeInvalid)})
		return
	}
	created, err := h.repo.Create(r.Context(), rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// Update merges the body into the stored record: fields missing from the
// body keep their stored values.
func (h *CollectionHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	updated, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), func(cur *T) error {
		if err := json.Unmarshal(body, cur); err != nil {
			return appErr.Wrap(err, appErr.CodeInvalid, "invalid json")
		}
		if err := h.validate.Struct(cur); err != nil {
			return appErr.Wrap(err, appErr.CodeInvalid, validators.Message(err))
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *CollectionHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SuccessResponse{Success: true})
}

// Routes mounts the handler on a chi router.
func (h *CollectionHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// SingletonHandler reads and replaces one singleton document.
type SingletonHandler[T any] struct {
	single *repository.Single[T]
}

func NewSingletonHandler[T any](single *repository.Single[T]) *SingletonHandler[T] {
	return &SingletonHandler[T]{single: single}
}

func (h *SingletonHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.single.Get(r.Context()))
}

// Put decodes the body onto the current document, so a partial body
// keeps the other sections.
func (h *SingletonHandler[T]) Put(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	cur := h.single.Get(r.Context())
	if err := json.Unmarshal(body, &cur); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	saved, err := h.single.Update(r.Context(), cur)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, saved)
}

func (h *SingletonHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Put)
}
