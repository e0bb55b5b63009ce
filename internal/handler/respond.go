package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/middleware"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EGONE:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// JSONResponse writes v as a JSON response with the given status.
func JSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// ErrorResponse writes a structured JSON error. Field-level validation
// failures carry the offending step and a per-field message map so forms
// can surface every problem at once. Internal errors are logged with
// their cause but reach the client as a generic message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		JSONResponse(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{
				"code":    domain.EINVALID,
				"message": "Validation failed",
				"step":    ve.Step,
				"fields":  ve.Fields,
			},
		})
		return
	}

	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	if status >= 500 {
		logger.Error("request failed", "error", err.Error(), "code", code)
	} else {
		logger.Info("request rejected", "error", err.Error(), "code", code)
	}

	JSONResponse(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": domain.ErrorMessage(err),
		},
	})
}
