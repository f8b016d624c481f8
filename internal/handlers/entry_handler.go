package handlers

import (
	"encoding/json"
	"net/http"

	"carpool/internal/ledger"
	"carpool/internal/models"
	"carpool/internal/service"
)

// EntryHandler handles day-entry HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// ListMonth returns all entries in the month given by ?month=YYYY-MM
func (h *EntryHandler) ListMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	entries, err := h.entryService.ListMonth(month)
	if err != nil {
		respondServiceError(w, "Error listing entries", err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// Get returns a single entry by date
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	entry, err := h.entryService.GetEntry(date)
	if err != nil {
		respondServiceError(w, "Error getting entry", err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

type upsertEntryRequest struct {
	Date     string       `json:"date"`
	DriverID string       `json:"driver_id"`
	DayType  string       `json:"day_type"`
	Riders   []riderInput `json:"riders"`
	Notes    string       `json:"notes"`
}

type riderInput struct {
	MemberID string `json:"member_id"`
	TripType string `json:"trip_type"`
}

// Upsert saves the entry for a date. Saving the same date again fully
// replaces the previous entry.
func (h *EntryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	riders := make([]ledger.RiderInput, len(req.Riders))
	for i, rr := range req.Riders {
		riders[i] = ledger.RiderInput{
			MemberID: rr.MemberID,
			TripType: models.DayType(rr.TripType),
		}
	}

	entry, err := h.entryService.UpsertEntry(req.Date, req.DriverID, models.DayType(req.DayType), riders, req.Notes)
	if err != nil {
		respondServiceError(w, "Error saving entry", err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

// Delete removes the entry for a date
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	if err := h.entryService.DeleteEntry(date); err != nil {
		respondServiceError(w, "Error deleting entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
