package httpapi

import (
	"net/http"

	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/server/models"
)

type loginLinkRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user,omitempty"`
}

func (s *Server) handleLoginLink(w http.ResponseWriter, r *http.Request) {
	var req loginLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, common.ErrorInvalidEmail)
		return
	}

	if err := s.users.RequestLoginLink(r.Context(), req.Email); err != nil {
		s.logger.Error(r.Context(), "login link request failed", "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, common.ErrInvalidToken)
		return
	}

	session, err := s.users.VerifyLoginLink(r.Context(), req.Token)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, common.ErrInvalidToken)
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, common.ErrInvalidToken)
		return
	}

	if err := s.users.Logout(r.Context(), req.RefreshToken); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
