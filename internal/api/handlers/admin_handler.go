package handlers

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/atech/cms/internal/media"
	"github.com/atech/cms/internal/repository"
	"github.com/atech/cms/pkg/logger"
)

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 10 << 20

type AdminHandler struct {
	store    *repository.Store
	uploader media.Uploader
}

func NewAdminHandler(store *repository.Store, uploader media.Uploader) *AdminHandler {
	return &AdminHandler{store: store, uploader: uploader}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.store.Stats(r.Context()))
}

// Upload stores the multipart field "file" and answers with the bare
// upload result, without a {data} envelope.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorStr(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeErrorStr(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer f.Close()
	if hdr.Size > MaxUploadBytes {
		writeErrorStr(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.uploader.Upload(r.Context(), media.File{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	logger.L().Info("file uploaded",
		zap.String("filename", res.Filename),
		zap.Int64("size", res.Size),
	)
	writeJSON(w, http.StatusOK, res)
}
