package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/chess-league/services"
)

// HeaderArchiveURL carries the public URL of the archived copy, when one was stored.
const HeaderArchiveURL = "X-Archive-URL"

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// ExportHandler handles GET /groups/{groupID}/export/{format}
func (h *ReportHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	export, err := h.reportService.Export(r.Context(), groupID, chi.URLParam(r, "format"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	if export.ArchiveURL != "" {
		w.Header().Set(HeaderArchiveURL, export.ArchiveURL)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Data); err != nil {
		slog.WarnContext(r.Context(), "failed to write export", slog.Int("group_id", groupID), slog.Any("error", err))
	}
}
