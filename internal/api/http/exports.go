package apihttp

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	analysisapp "powerplan/internal/analysis/application"
	"powerplan/internal/observability/metrics"
	readings "powerplan/internal/readings/domain"
	"powerplan/internal/session"
	tariffapp "powerplan/internal/tariff/application"
	tariff "powerplan/internal/tariff/domain"
	"powerplan/internal/tariff/interfaces"
)

// ExportIntervalsCSVHandler serves usage intervals as CSV.
type ExportIntervalsCSVHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
}

// NewExportIntervalsCSVHandler constructs an ExportIntervalsCSVHandler.
func NewExportIntervalsCSVHandler(store *session.Store, service *analysisapp.AnalysisService) *ExportIntervalsCSVHandler {
	return &ExportIntervalsCSVHandler{store: store, service: service}
}

// ServeHTTP handles GET /api/v1/exports/intervals.csv.
func (h *ExportIntervalsCSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := resolveSession(w, r, h.store)
	if !ok {
		return
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("csv", result, time.Since(start))
	}()

	intervals, _ := h.service.IntervalsByType(sess.Readings)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{
		"type",
		"start",
		"end",
		"days",
		"delta_kwh",
		"daily_kwh",
		"clamped",
	})
	for _, t := range readings.AllTypes() {
		for _, interval := range intervals[t] {
			_ = writer.Write([]string{
				string(interval.Type),
				interval.Start.Format(dateLayout),
				interval.End.Format(dateLayout),
				strconv.Itoa(interval.Days),
				formatFloat(interval.DeltaKWh),
				formatFloat(interval.DailyKWh),
				strconv.FormatBool(interval.Clamped),
			})
		}
	}
	writer.Flush()
}

// ExportEstimateXLSXHandler serves the annual estimate as a spreadsheet.
type ExportEstimateXLSXHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
	plans   tariffapp.PlanConfig
}

// NewExportEstimateXLSXHandler constructs an ExportEstimateXLSXHandler.
func NewExportEstimateXLSXHandler(store *session.Store, service *analysisapp.AnalysisService, plans tariffapp.PlanConfig) *ExportEstimateXLSXHandler {
	return &ExportEstimateXLSXHandler{store: store, service: service, plans: plans}
}

// ServeHTTP handles GET /api/v1/exports/estimate.xlsx.
func (h *ExportEstimateXLSXHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := resolveSession(w, r, h.store)
	if !ok {
		return
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("xlsx", result, time.Since(start))
	}()

	estimate, months, err := buildEstimateReport(r, h.service, h.plans, sess)
	if err != nil {
		result = metrics.ResultError
		respondAnalysisError(w, err)
		return
	}
	data, err := interfaces.BuildEstimateXLSX(&estimate, months)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportEstimatePDFHandler serves the annual estimate as a PDF.
type ExportEstimatePDFHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
	plans   tariffapp.PlanConfig
}

// NewExportEstimatePDFHandler constructs an ExportEstimatePDFHandler.
func NewExportEstimatePDFHandler(store *session.Store, service *analysisapp.AnalysisService, plans tariffapp.PlanConfig) *ExportEstimatePDFHandler {
	return &ExportEstimatePDFHandler{store: store, service: service, plans: plans}
}

// ServeHTTP handles GET /api/v1/exports/estimate.pdf.
func (h *ExportEstimatePDFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := resolveSession(w, r, h.store)
	if !ok {
		return
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("pdf", result, time.Since(start))
	}()

	estimate, months, err := buildEstimateReport(r, h.service, h.plans, sess)
	if err != nil {
		result = metrics.ResultError
		respondAnalysisError(w, err)
		return
	}
	data, err := interfaces.BuildEstimatePDF(&estimate, months)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func buildEstimateReport(r *http.Request, service *analysisapp.AnalysisService, plans tariffapp.PlanConfig, sess *session.Session) (estimate tariff.AnnualEstimate, months []analysisapp.MonthRow, err error) {
	plan, err := planFromQuery(r, plans.Current)
	if err != nil {
		return estimate, nil, err
	}
	estimate, _, err = service.Estimate(sess.Readings, plan)
	if err != nil {
		return estimate, nil, err
	}
	months, err = service.MonthlyBreakdown(sess.Readings, plan)
	if err != nil {
		return estimate, nil, err
	}
	return estimate, months, nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
