package review

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/escrow"
	"github.com/rekberhq/rekber/internal/http/middleware"
	"github.com/rekberhq/rekber/internal/review"
)

type Handler struct {
	svc *review.Service
}

func NewHandler(svc *review.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
}

// PublicRoutes serves the landing-page review feed.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/reviews/latest", h.latest)
}

type createRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
}

type reviewResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	ReviewerID    uuid.UUID `json:"reviewer_id"`
	TargetID      uuid.UUID `json:"target_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(r *review.Review) reviewResponse {
	return reviewResponse{
		ID:            r.ID,
		TransactionID: r.TransactionID,
		ReviewerID:    r.ReviewerID,
		TargetID:      r.TargetID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rv, err := h.svc.Create(r.Context(), actor.ID, review.CreateParams{
		TransactionID: req.TransactionID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(rv))
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	reviews, err := h.svc.Latest(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]reviewResponse, len(reviews))
	for i, rv := range reviews {
		resp[i] = toResponse(rv)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, escrow.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, review.ErrNotBuyer):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, review.ErrNotCompleted),
		errors.Is(err, review.ErrAlreadyReviewed),
		errors.Is(err, review.ErrInvalidRating):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
