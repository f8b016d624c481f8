package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carpool/internal/service"
	"carpool/internal/validation"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != "Teapot" {
		t.Fatalf("expected body 'Teapot', got %q", body)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(recorder, 500, "Internal server error", "", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to include user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", validation.Error{Field: "date", Message: "bad date"}, http.StatusBadRequest},
		{"member not found", service.ErrMemberNotFound, http.StatusNotFound},
		{"entry not found", service.ErrEntryNotFound, http.StatusNotFound},
		{"rates not set", service.ErrRatesNotSet, http.StatusUnprocessableEntity},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped not found", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondServiceError(recorder, "test", tt.err)
			if recorder.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	respondServiceError(recorder, "test", errors.New("password=hunter2"))

	if strings.Contains(recorder.Body.String(), "hunter2") {
		t.Fatal("internal error detail leaked to the client")
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != ErrInternalServerError {
		t.Fatalf("expected generic message, got %q", body)
	}
}
