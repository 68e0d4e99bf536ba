package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frental-api/internal/application/admin"
	"github.com/frental-api/internal/domain"
	"github.com/frental-api/internal/pkg/validate"
	"github.com/frental-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// AdminHandler handles the admin dashboard, directories and referrals.
type AdminHandler struct {
	svc admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) ListLandlords(w http.ResponseWriter, r *http.Request) {
	landlords, err := h.svc.ListLandlords(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if landlords == nil {
		landlords = []domain.Landlord{}
	}
	writeJSON(w, http.StatusOK, landlords)
}

func (h *AdminHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.ListProperties(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if props == nil {
		props = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *AdminHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) SearchVacantUnits(w http.ResponseWriter, r *http.Request) {
	maxRent, _ := strconv.ParseFloat(r.URL.Query().Get("max_rent"), 64)
	units, err := h.svc.SearchVacantUnits(r.Context(), r.URL.Query().Get("q"), maxRent)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (h *AdminHandler) CreateReferral(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ref, err := h.svc.CreateReferral(r.Context(), claims.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

func (h *AdminHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	refs, err := h.svc.ListReferrals(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

func (h *AdminHandler) UpdateReferralStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ref, err := h.svc.UpdateReferralStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}
