package handlers

import (
	"net/http"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// SettlementHandler handles month settlement HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
	notifyService     *service.NotifyService
	settingsRepo      *repository.SettingsRepository
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService, notifyService *service.NotifyService, settingsRepo *repository.SettingsRepository) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		notifyService:     notifyService,
		settingsRepo:      settingsRepo,
	}
}

// Get computes the settlement for the month given by ?month=YYYY-MM
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	settlement, err := h.settlementService.SettleMonth(month)
	if err != nil {
		respondServiceError(w, "Error computing settlement", err)
		return
	}
	respondWithJSON(w, http.StatusOK, settlement)
}

// Notify emails the month's settlement summary to the configured
// recipients
func (h *SettlementHandler) Notify(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	if !h.notifyService.IsEnabled() {
		http.Error(w, "Email notifications are not configured", http.StatusServiceUnavailable)
		return
	}

	recipients, err := h.settingsRepo.NotifyRecipients()
	if err != nil {
		respondServiceError(w, "Error loading notification recipients", err)
		return
	}
	if len(recipients) == 0 {
		http.Error(w, "No notification recipients configured", http.StatusBadRequest)
		return
	}

	settlement, err := h.settlementService.SettleMonth(month)
	if err != nil {
		respondServiceError(w, "Error computing settlement", err)
		return
	}

	if err := h.notifyService.SendSettlementSummary(r.Context(), recipients, settlement); err != nil {
		respondServiceError(w, "Error sending settlement summary", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"month":      settlement.Month,
		"recipients": len(recipients),
	})
}
