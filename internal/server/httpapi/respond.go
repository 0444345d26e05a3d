package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bookstore/internal/common"
)

const detailInternal = "Internal Server Error"

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends {"detail": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeError(w, http.StatusUnauthorized, msg)
}

// writeServiceError maps a service error onto a status code. notFound is the
// detail used for common.ErrorNotFound. Unclassified errors are logged and
// reported without detail.
func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error, notFound string) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, common.ErrorUnauthorized):
		writeUnauthorized(w, detailCredentials)
	default:
		r.logger.Error(req.Context(), "request failed", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, detailInternal)
	}
}

// pathID parses the {id} wildcard. A non-numeric or non-positive id is a
// validation failure.
func pathID(req *http.Request) (int64, error) {
	raw := req.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("id", "value is not a valid integer")
	}
	return id, nil
}

// decodeJSON reads a JSON body into dst. Malformed bodies are validation
// failures, as are trailing bytes after the first value.
func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return common.NewValidationError("body", "invalid JSON body")
	}
	if dec.More() {
		return common.NewValidationError("body", "invalid JSON body")
	}
	return nil
}

const maxBodyBytes = 1 << 20
