package handlers

import (
	"net/http"

	"carpool/internal/calendar"
	"carpool/internal/validation"
)

// CalendarHandler serves the federal holiday calendar
type CalendarHandler struct{}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{}
}

// Holidays returns observed federal holidays for the month given by
// ?month=YYYY-MM. A holiday observed in an adjacent month (a Saturday
// January 1 observed on December 31) shows up under the month it is
// observed in.
func (h *CalendarHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if err := validation.ValidateMonth(month); err != nil {
		respondServiceError(w, "", err)
		return
	}

	respondWithJSON(w, http.StatusOK, calendar.HolidaysForMonth(month))
}
