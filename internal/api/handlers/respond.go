package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/atech/cms/internal/api/types"
	appErr "github.com/atech/cms/pkg/errors"
	"github.com/atech/cms/pkg/logger"
)

// maxBodyBytes caps JSON request bodies. Uploads have their own limit.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, types.DataResponse{Data: v})
}

func writeError(w http.ResponseWriter, err error) {
	status, body := types.FromAppError(err)
	fields := []zap.Field{zap.Int("status", status), zap.Error(err)}
	var ae *appErr.AppError
	if errors.As(err, &ae) && len(ae.Meta) > 0 {
		fields = append(fields, zap.Any("meta", ae.Meta))
	}
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed", fields...)
	} else {
		logger.L().Debug("request rejected", fields...)
	}
	writeJSON(w, status, body)
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

// readBody returns the request body, rejecting anything that is not a
// JSON object.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorStr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeErrorStr(w, http.StatusBadRequest, "could not read request body")
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return nil, false
	}
	return body, true
}

// queryInt parses a non-negative integer query parameter. Missing or
// malformed values give 0, which means no limit.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
