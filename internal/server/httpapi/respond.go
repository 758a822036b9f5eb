package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asorokin/decat/internal/common"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps service sentinels onto HTTP status codes. Expired access
// tokens get a dedicated code so clients know a refresh is worth trying.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "token expired"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshExpired),
		errors.Is(err, common.ErrLoginLinkExpired),
		errors.Is(err, common.ErrLoginLinkConsumed):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorEmptyField), errors.Is(err, common.ErrorInvalidEmail):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
