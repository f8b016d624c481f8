package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/strongo/decimal"

	"carpool/internal/service"
)

// MemberHandler handles member roster HTTP requests
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List returns the active member roster
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers()
	if err != nil {
		respondServiceError(w, "Error listing members", err)
		return
	}
	respondWithJSON(w, http.StatusOK, members)
}

type createMemberRequest struct {
	Name string `json:"name"`
}

// Create adds a new member to the roster
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	member, err := h.memberService.AddMember(req.Name)
	if err != nil {
		respondServiceError(w, "Error creating member", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, member)
}

type updateRatesRequest struct {
	OneWayTotal float64 `json:"one_way_total"`
	TwoWayTotal float64 `json:"two_way_total"`
}

// UpdateRates sets a member's driving day totals. New rates apply to
// future saves only, stored entries keep the total they were split with.
func (h *MemberHandler) UpdateRates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	member, err := h.memberService.UpdateRates(id,
		decimal.NewDecimal64p2FromFloat64(req.OneWayTotal),
		decimal.NewDecimal64p2FromFloat64(req.TwoWayTotal),
	)
	if err != nil {
		respondServiceError(w, "Error updating rates", err)
		return
	}
	respondWithJSON(w, http.StatusOK, member)
}

// Deactivate removes a member from the active roster. Their history
// stays on past entries.
func (h *MemberHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.memberService.DeactivateMember(id); err != nil {
		respondServiceError(w, "Error deactivating member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
