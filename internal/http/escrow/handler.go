package escrow

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rekberhq/rekber/internal/audit"
	"github.com/rekberhq/rekber/internal/escrow"
	"github.com/rekberhq/rekber/internal/http/middleware"
	"github.com/rekberhq/rekber/internal/proof"
)

type Handler struct {
	svc    *escrow.Service
	proofs *proof.Service
	audit  *audit.Service
}

func NewHandler(svc *escrow.Service, proofs *proof.Service, auditSvc *audit.Service) *Handler {
	return &Handler{svc: svc, proofs: proofs, audit: auditSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.listMine)
	r.Get("/{id}", h.detail)
	r.Post("/{id}/payment-proof", h.submitPaymentProof)
	r.Post("/{id}/proofs", h.attachProof)
	r.Post("/{id}/ship", h.markShipped)
	r.Post("/{id}/dispute", h.openDispute)
	r.Post("/{id}/received", h.markReceived)
	r.Post("/{id}/return", h.returnGoods)
	r.Post("/{id}/confirm-return", h.confirmReturn)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/all", h.listAll)
		r.Post("/{id}/verify", h.verifyPayment)
		r.Post("/{id}/reject", h.rejectPayment)
		r.Post("/{id}/disburse", h.disburse)
		r.Post("/{id}/resolve", h.resolveDispute)
		r.Post("/{id}/refunded", h.markRefunded)
	})
}

// PublicRoutes carries the endpoints that need no authentication. The
// paths are absolute so they can sit next to the authenticated mount.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/transactions/track/{code}", h.track)
}

type createRequest struct {
	SellerID    uuid.UUID `json:"seller_id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
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

	tx, err := h.svc.Create(r.Context(), escrow.CreateParams{
		BuyerID:     actor.ID,
		SellerID:    req.SellerID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := h.svc.ListForUser(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	filter := escrow.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := escrow.Status(s)
		if !status.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		filter.Status = &status
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	actor, tx, ok := h.loadForActor(w, r)
	if !ok {
		return
	}

	if !tx.Involves(actor.ID) && actor.Role != escrow.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	proofs, err := h.proofs.ListByTransaction(r.Context(), tx.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	msgs, err := h.audit.History(r.Context(), tx.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDetailResponse(tx, proofs, msgs))
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.Track(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTrackResponse(tx))
}

type imageRequest struct {
	ImageURL string `json:"image_url"`
}

func (h *Handler) submitPaymentProof(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return
	}

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ImageURL == "" {
		http.Error(w, "image_url is required", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Apply(r.Context(), actor, id, escrow.ActionSubmitPaymentProof, escrow.Input{})
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.proofs.Attach(r.Context(), id, proof.TypePayment, req.ImageURL); err != nil {
		slog.Error("failed to record payment proof", "transaction", id, "error", err)
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type attachProofRequest struct {
	Type     proof.Type `json:"type"`
	ImageURL string     `json:"image_url"`
}

func (h *Handler) attachProof(w http.ResponseWriter, r *http.Request) {
	actor, tx, ok := h.loadForActor(w, r)
	if !ok {
		return
	}

	if !tx.Involves(actor.ID) && actor.Role != escrow.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req attachProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.proofs.Attach(r.Context(), tx.ID, req.Type, req.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, proofResponse{
		ID:        p.ID,
		Type:      p.Type,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	})
}

type shipRequest struct {
	TrackingReference string `json:"tracking_reference"`
}

func (h *Handler) markShipped(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return
	}

	var req shipRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	tx, err := h.svc.Apply(r.Context(), actor, id, escrow.ActionMarkShipped, escrow.Input{
		TrackingReference: req.TrackingReference,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type disputeRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) openDispute(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return
	}

	var req disputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Reason == "" {
		http.Error(w, "reason is required", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Apply(r.Context(), actor, id, escrow.ActionOpenDispute, escrow.Input{Reason: req.Reason})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) markReceived(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, escrow.ActionMarkReceived, escrow.Input{})
}

func (h *Handler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, escrow.ActionVerifyPayment, escrow.Input{})
}

func (h *Handler) rejectPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, escrow.ActionRejectPayment, escrow.Input{})
}

func (h *Handler) disburse(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, escrow.ActionDisburse, escrow.Input{})
}

func (h *Handler) confirmReturn(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, escrow.ActionConfirmReturn, escrow.Input{})
}

func (h *Handler) markRefunded(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, escrow.ActionMarkRefunded, escrow.Input{})
}

type resolveRequest struct {
	Decision escrow.Decision `json:"decision"`
}

func (h *Handler) resolveDispute(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Apply(r.Context(), actor, id, escrow.ActionResolveDispute, escrow.Input{Decision: req.Decision})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) returnGoods(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return
	}

	var req imageRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	tx, err := h.svc.Apply(r.Context(), actor, id, escrow.ActionReturnGoods, escrow.Input{EvidenceURL: req.ImageURL})
	if err != nil {
		writeError(w, err)
		return
	}

	if req.ImageURL != "" {
		if _, err := h.proofs.Attach(r.Context(), id, proof.TypeReturn, req.ImageURL); err != nil {
			slog.Error("failed to record return proof", "transaction", id, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

// apply handles the bodyless transition endpoints.
func (h *Handler) apply(w http.ResponseWriter, r *http.Request, action escrow.Action, in escrow.Input) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Apply(r.Context(), actor, id, action, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) loadForActor(w http.ResponseWriter, r *http.Request) (escrow.Actor, *escrow.Transaction, bool) {
	actor, id, ok := actorAndID(w, r)
	if !ok {
		return escrow.Actor{}, nil, false
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return escrow.Actor{}, nil, false
	}

	return actor, tx, true
}

func actorAndID(w http.ResponseWriter, r *http.Request) (escrow.Actor, uuid.UUID, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return escrow.Actor{}, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return escrow.Actor{}, uuid.Nil, false
	}

	return actor, id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps the engine's typed failures to status codes so callers
// never have to inspect error text.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, escrow.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, escrow.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, escrow.ErrStaleState):
		http.Error(w, "transaction changed concurrently, retry", http.StatusConflict)
	case errors.Is(err, escrow.ErrTerminalState):
		http.Error(w, "transaction is closed", http.StatusConflict)
	case errors.Is(err, escrow.ErrInvalidTransition),
		errors.Is(err, escrow.ErrInvalidDecision),
		errors.Is(err, escrow.ErrMissingEvidence),
		errors.Is(err, escrow.ErrInvalidAmount),
		errors.Is(err, escrow.ErrSelfDealing),
		errors.Is(err, proof.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
