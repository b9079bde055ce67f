// Package api serves the learner and statistics REST endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"orfoepiya/internal/domain"

	"go.uber.org/zap"
)

type authService interface {
	LoginByNickname(ctx context.Context, nickname string) (*domain.UserAccount, error)
	GetUser(ctx context.Context, id int64) (*domain.UserAccount, error)
}

type statsService interface {
	GetModuleStats(ctx context.Context, userID int64, moduleID string) (domain.UserStat, error)
	GetAllStats(ctx context.Context, userID int64) ([]domain.UserStat, error)
	UpdateStats(ctx context.Context, userID int64, moduleID string, totalAttempts, correctAnswers int) (*domain.UserStat, error)
}

// dbPinger is the database handle checked by /health
type dbPinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the REST API
type Handler struct {
	auth   authService
	stats  statsService
	db     dbPinger
	logger *zap.Logger
}

// NewHandler creates the REST handler
func NewHandler(auth authService, stats statsService, db dbPinger, logger *zap.Logger) *Handler {
	return &Handler{
		auth:   auth,
		stats:  stats,
		db:     db,
		logger: logger,
	}
}

// Routes returns the router wrapped in recovery and request logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /api/users/login", h.Login)
	mux.HandleFunc("GET /api/users/{userID}/stats", h.ListStats)
	mux.HandleFunc("GET /api/users/{userID}/stats/{moduleID}", h.GetStats)
	mux.HandleFunc("PUT /api/users/{userID}/stats/{moduleID}", h.UpdateStats)

	return Chain(Recovery(h.logger), Logger(h.logger))(mux)
}

type loginRequest struct {
	Nickname string `json:"nickname"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

type statsRequest struct {
	TotalAttempts  *int `json:"totalAttempts"`
	CorrectAnswers *int `json:"correctAnswers"`
}

type statsResponse struct {
	ModuleID       string     `json:"moduleId,omitempty"`
	TotalAttempts  int        `json:"totalAttempts"`
	CorrectAnswers int        `json:"correctAnswers"`
	Accuracy       int        `json:"accuracy"`
	LastAttemptAt  *time.Time `json:"lastAttemptAt,omitempty"`
}

type updateStatsResponse struct {
	Success bool          `json:"success"`
	Stats   statsResponse `json:"stats"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Login handles POST /api/users/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.LoginByNickname(r.Context(), req.Nickname)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    userResponse{ID: user.ID, Nickname: user.Nickname},
	})
}

// ListStats handles GET /api/users/{userID}/stats
func (h *Handler) ListStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.knownUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.GetAllStats(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]statsResponse, 0, len(stats))
	for _, s := range stats {
		resp = append(resp, toStatsResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetStats handles GET /api/users/{userID}/stats/{moduleID}
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.knownUserID(w, r)
	if !ok {
		return
	}

	stat, err := h.stats.GetModuleStats(r.Context(), userID, r.PathValue("moduleID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := toStatsResponse(stat)
	resp.ModuleID = ""
	writeJSON(w, http.StatusOK, resp)
}

// UpdateStats handles PUT /api/users/{userID}/stats/{moduleID}
func (h *Handler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req statsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TotalAttempts == nil || req.CorrectAnswers == nil {
		writeError(w, http.StatusBadRequest, "totalAttempts and correctAnswers are required")
		return
	}

	stat, err := h.stats.UpdateStats(r.Context(), userID, r.PathValue("moduleID"), *req.TotalAttempts, *req.CorrectAnswers)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updateStatsResponse{
		Success: true,
		Stats:   toStatsResponse(*stat),
	})
}

// Health handles GET /health. It pings the database: 200 if up, 503 if not.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "down",
			Database:  "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now(),
	})
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusBadRequest, "unknown user")
	default:
		h.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// knownUserID parses the user id and checks that the learner exists. Writes
// go through the foreign key instead.
func (h *Handler) knownUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return 0, false
	}
	if _, err := h.auth.GetUser(r.Context(), userID); err != nil {
		h.handleError(w, r, err)
		return 0, false
	}
	return userID, true
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func toStatsResponse(s domain.UserStat) statsResponse {
	return statsResponse{
		ModuleID:       s.ModuleID,
		TotalAttempts:  s.TotalAttempts,
		CorrectAnswers: s.CorrectAnswers,
		Accuracy:       s.Accuracy(),
		LastAttemptAt:  s.LastAttemptAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
