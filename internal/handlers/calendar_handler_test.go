package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carpool/internal/calendar"
)

func TestHolidaysReturnsMonth(t *testing.T) {
	handler := NewCalendarHandler()

	req := httptest.NewRequest("GET", "/api/holidays?month=2025-07", nil)
	recorder := httptest.NewRecorder()

	handler.Holidays(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var holidays []calendar.Holiday
	if err := json.NewDecoder(recorder.Body).Decode(&holidays); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday in July 2025, got %d", len(holidays))
	}
	if holidays[0].Date != "2025-07-04" || holidays[0].Name != "Independence Day" {
		t.Fatalf("unexpected holiday %+v", holidays[0])
	}
}

func TestHolidaysRejectsBadMonth(t *testing.T) {
	handler := NewCalendarHandler()

	for _, month := range []string{"", "2025-13", "2025-7", "2025-00"} {
		req := httptest.NewRequest("GET", "/api/holidays?month="+month, nil)
		recorder := httptest.NewRecorder()

		handler.Holidays(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("month %q: expected status 400, got %d", month, recorder.Code)
		}
	}
}
