package http

import (
	"log/slog"
	"net/http"

	"github.com/tracklite/timeclock-backend-go/internal/domain/report"
	"github.com/tracklite/timeclock-backend-go/internal/handler/http/response"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	PayPeriod(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Summary implements ReportHandler.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.GetReport(r.Context())
	if err != nil {
		slog.Error("Report summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rep)
}

// PayPeriod implements ReportHandler.
func (h *reportHandlerImpl) PayPeriod(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period != "" && !validator.IsValidPeriodKey(period) {
		response.BadRequest(w, "Invalid period format, expected YYYY-MM", nil)
		return
	}

	summary, err := h.reportService.GetPeriodSummary(r.Context(), period)
	if err != nil {
		slog.Error("Pay period service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
