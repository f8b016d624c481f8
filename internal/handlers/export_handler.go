package handlers

import (
	"fmt"
	"net/http"
	"time"

	"carpool/internal/service"
)

// ExportHandler serves ledger downloads
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Download streams the ledger as a JSON file. ?month=YYYY-MM restricts
// it to one month, otherwise everything is exported.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("carpool_export_%s.json", timestamp)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := h.exportService.Export(w, month); err != nil {
		respondServiceError(w, "Error exporting ledger", err)
		return
	}
}
