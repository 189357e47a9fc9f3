package handlers

import (
	"net/http"

	"github.com/atech/cms/internal/api/types"
	"github.com/atech/cms/internal/repository"
)

type HealthHandler struct {
	backend repository.Backend
}

func NewHealthHandler(backend repository.Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ready", Backend: string(h.backend)})
}
