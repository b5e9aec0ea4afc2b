package setting

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rekberhq/rekber/internal/http/middleware"
	"github.com/rekberhq/rekber/internal/setting"
)

type Handler struct {
	svc *setting.Service
}

func NewHandler(svc *setting.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the authenticated surface. Paths are absolute: the
// public GET lives on the same node, so the handler is not mounted.
func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.RequireAdmin).Put("/settings/payment", h.update)
}

// PublicRoutes exposes the fee so the create form can show the total.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/settings/payment", h.get)
}

type paymentSettings struct {
	AdminFee int64 `json:"admin_fee"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	fee, err := h.svc.AdminFee(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(paymentSettings{AdminFee: fee}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req paymentSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetAdminFee(r.Context(), req.AdminFee); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
