package http

import (
	"digest-lab/auth"
	"digest-lab/domain"
	"digest-lab/errors"
	"encoding/json"
	goerrors "errors"
	"net/http"
	"strconv"
	"time"
)

type errorResponse struct {
	Error string `json:"error"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := s.monitoring.GetLatest()

	// The store is authoritative; the in-memory gauge drifts while deliveries
	// fail and retry.
	pending, err := s.queue.CountPending()
	if err != nil {
		s.log.Warn("Pending count failed, reporting the gauge", "err", err)
		pending = stats.CurrentQueueSize
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"digests_sent":  stats.DigestsSent,
		"queue_pending": pending,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := s.auth.Register(req)
	switch {
	case goerrors.Is(err, errors.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case goerrors.Is(err, errors.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.log.Error("Registration failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
	default:
		writeJSON(w, http.StatusCreated, tokenResponse{Token: string(token)})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := s.auth.Login(req.Email, req.Password)
	switch {
	case goerrors.Is(err, errors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case err != nil:
		s.log.Error("Login failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "login failed")
	default:
		writeJSON(w, http.StatusOK, tokenResponse{Token: string(token)})
	}
}

// handleDigest composes the caller's digest on demand, over the same window
// the scheduler uses, without sending or archiving anything.
func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	composed, err := s.digest.Compose(r.Context(), domain.DigestEvent{
		UserID: claims.UserID,
		Cutoff: time.Now().UTC().Add(-s.window),
	})
	switch {
	case goerrors.Is(err, errors.ErrNotEnoughTraffic),
		goerrors.Is(err, errors.ErrDigestSuppressed):
		w.WriteHeader(http.StatusNoContent)
	case goerrors.Is(err, errors.ErrUserNotFound),
		goerrors.Is(err, errors.ErrRealmNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.log.Error("On-demand digest failed", "user_id", claims.UserID, "err", err)
		writeError(w, http.StatusInternalServerError, "digest composition failed")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"subject": composed.Subject,
			"body":    composed.Body,
			"context": composed.Context,
		})
	}
}

const defaultHistoryLimit = 20

// handleDigestHistory lists the caller's archived digests, newest first.
func (s *Server) handleDigestHistory(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing claims")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := s.archive.ListByUser(claims.UserID, limit)
	if err != nil {
		s.log.Error("Digest history failed", "user_id", claims.UserID, "err", err)
		writeError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"digests": records})
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing token")
		return
	}

	userID, err := s.digest.Unsubscribe(token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or expired token")
		return
	}

	s.log.Info("User unsubscribed from digest", "user_id", userID)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<html><body><p>You will no longer receive digest emails.</p></body></html>"))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = parsed
	}

	records, total, err := s.archive.SearchPaginated(r.Context(), query, page)
	if err != nil {
		s.log.Error("Archive search failed", "query", query, "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":   total,
		"page":    page,
		"results": records,
	})
}
