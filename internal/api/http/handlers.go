package apihttp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	analysisapp "powerplan/internal/analysis/application"
	analysis "powerplan/internal/analysis/domain"
	"powerplan/internal/auth"
	"powerplan/internal/observability/metrics"
	readings "powerplan/internal/readings/domain"
	"powerplan/internal/session"
	tariffapp "powerplan/internal/tariff/application"
	tariff "powerplan/internal/tariff/domain"
)

const dateLayout = "2006-01-02"

// UploadHandler accepts a CSV of meter readings and opens a session.
type UploadHandler struct {
	store    *session.Store
	secret   []byte
	tokenTTL time.Duration
	maxBytes int64
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(store *session.Store, secret []byte, tokenTTL time.Duration, maxBytes int64) (*UploadHandler, error) {
	if store == nil {
		return nil, errors.New("upload handler: nil store")
	}
	if len(secret) == 0 {
		return nil, errors.New("upload handler: empty secret")
	}
	return &UploadHandler{store: store, secret: secret, tokenTTL: tokenTTL, maxBytes: maxBytes}, nil
}

// ServeHTTP handles POST /api/v1/readings.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveUpload(result, time.Since(start))
	}()

	body, err := h.csvBody(w, r)
	if err != nil {
		result = metrics.ResultError
		metrics.IncUploadError("bad_request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer body.Close()

	set, err := readings.ParseCSV(body)
	if err != nil {
		result = metrics.ResultError
		metrics.IncUploadError(parseErrorReason(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := h.store.Create(set)
	token, err := auth.IssueSessionToken(sess.ID, h.secret, h.tokenTTL)
	if err != nil {
		result = metrics.ResultError
		h.store.Delete(sess.ID)
		http.Error(w, "token issue error", http.StatusInternalServerError)
		return
	}
	metrics.SetActiveSessions(h.store.Len())

	first, last, _ := readings.Span(set)
	resp := map[string]any{
		"token":      token,
		"session_id": sess.ID,
		"count":      len(set),
		"first_date": first.Format(dateLayout),
		"last_date":  last.Format(dateLayout),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// csvBody resolves the upload payload: a multipart "file" part when the
// request is a form upload, the raw body otherwise.
func (h *UploadHandler) csvBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, errors.New("multipart upload needs a file field")
		}
		return file, nil
	}
	return r.Body, nil
}

func parseErrorReason(err error) string {
	switch {
	case errors.Is(err, readings.ErrBadDate):
		return "bad_date"
	case errors.Is(err, readings.ErrBadNumber):
		return "bad_number"
	case errors.Is(err, readings.ErrNegativeReading):
		return "negative_reading"
	case errors.Is(err, readings.ErrUnknownReadingType):
		return "unknown_type"
	case errors.Is(err, readings.ErrUnknownSource):
		return "unknown_source"
	case errors.Is(err, readings.ErrBadHeader):
		return "bad_header"
	case errors.Is(err, readings.ErrEmptyFile):
		return "empty_file"
	default:
		return "malformed"
	}
}

// ReadingsHandler serves the ordered reading series for a session.
type ReadingsHandler struct {
	store *session.Store
}

// NewReadingsHandler constructs a ReadingsHandler.
func NewReadingsHandler(store *session.Store) *ReadingsHandler {
	return &ReadingsHandler{store: store}
}

// ServeHTTP handles GET /api/v1/readings.
func (h *ReadingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := resolveSession(w, r, h.store)
	if !ok {
		return
	}

	first, last, _ := readings.Span(sess.Readings)
	resp := map[string]any{
		"session_id": sess.ID,
		"count":      len(sess.Readings),
		"first_date": first.Format(dateLayout),
		"last_date":  last.Format(dateLayout),
		"readings":   sess.Readings,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// IntervalsHandler serves derived usage intervals.
type IntervalsHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
}

// NewIntervalsHandler constructs an IntervalsHandler.
func NewIntervalsHandler(store *session.Store, service *analysisapp.AnalysisService) *IntervalsHandler {
	return &IntervalsHandler{store: store, service: service}
}

// ServeHTTP handles GET /api/v1/intervals.
func (h *IntervalsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := resolveSession(w, r, h.store)
	if !ok {
		return
	}

	intervals, warnings := h.service.IntervalsByType(sess.Readings)
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := readings.ParseReadingType(raw)
		if err != nil {
			http.Error(w, "unknown reading type", http.StatusBadRequest)
			return
		}
		resp := map[string]any{
			"type":      t,
			"intervals": intervals[t],
			"warnings":  warningsOfType(warnings, t),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	resp := map[string]any{
		"intervals": intervals,
		"warnings":  warnings,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func warningsOfType(warnings []analysis.Warning, t readings.ReadingType) []analysis.Warning {
	var result []analysis.Warning
	for _, warning := range warnings {
		if warning.Type == t {
			result = append(result, warning)
		}
	}
	return result
}

// MonthlyUsageHandler serves the monthly usage and cost rollup.
type MonthlyUsageHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
	plans   tariffapp.PlanConfig
}

// NewMonthlyUsageHandler constructs a MonthlyUsageHandler.
func NewMonthlyUsageHandler(store *session.Store, service *analysisapp.AnalysisService, plans tariffapp.PlanConfig) *MonthlyUsageHandler {
	return &MonthlyUsageHandler{store: store, service: service, plans: plans}
}

// ServeHTTP handles GET /api/v1/usage/monthly.
func (h *MonthlyUsageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := resolveSession(w, r, h.store)
	if !ok {
		return
	}

	plan, err := planFromQuery(r, h.plans.Current)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	months, err := h.service.MonthlyBreakdown(sess.Readings, plan)
	if err != nil {
		respondAnalysisError(w, err)
		return
	}

	resp := map[string]any{
		"plan":        plan,
		"months":      months,
		"daily_stats": h.service.DailyStatsByType(sess.Readings),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// EstimateHandler projects the annual cost of a session under a plan.
type EstimateHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
	plans   tariffapp.PlanConfig
}

// NewEstimateHandler constructs an EstimateHandler.
func NewEstimateHandler(store *session.Store, service *analysisapp.AnalysisService, plans tariffapp.PlanConfig) *EstimateHandler {
	return &EstimateHandler{store: store, service: service, plans: plans}
}

// ServeHTTP handles POST /api/v1/estimate.
func (h *EstimateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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
		metrics.ObserveEstimate(result, time.Since(start))
	}()

	var req struct {
		Plan *tariff.RatePlan `json:"plan"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			result = metrics.ResultError
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
	}
	plan := h.plans.Current
	if req.Plan != nil {
		plan = *req.Plan
	}

	estimate, warnings, err := h.service.Estimate(sess.Readings, plan)
	if err != nil {
		result = metrics.ResultError
		respondAnalysisError(w, err)
		return
	}

	resp := map[string]any{
		"estimate": estimate,
		"warnings": warnings,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// CompareHandler estimates two plans side by side.
type CompareHandler struct {
	store   *session.Store
	service *analysisapp.AnalysisService
	plans   tariffapp.PlanConfig
}

// NewCompareHandler constructs a CompareHandler.
func NewCompareHandler(store *session.Store, service *analysisapp.AnalysisService, plans tariffapp.PlanConfig) *CompareHandler {
	return &CompareHandler{store: store, service: service, plans: plans}
}

// ServeHTTP handles POST /api/v1/compare.
func (h *CompareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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
		metrics.ObserveCompare(result, time.Since(start))
	}()

	var req struct {
		Current        *tariff.RatePlan `json:"current"`
		Comparison     *tariff.RatePlan `json:"comparison"`
		ComparisonName string           `json:"comparison_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result = metrics.ResultError
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	current := h.plans.Current
	if req.Current != nil {
		current = *req.Current
	}
	var comparison tariff.RatePlan
	switch {
	case req.Comparison != nil:
		comparison = *req.Comparison
	case req.ComparisonName != "":
		named, found := h.plans.ComparisonByName(req.ComparisonName)
		if !found {
			result = metrics.ResultError
			http.Error(w, "unknown comparison plan", http.StatusNotFound)
			return
		}
		comparison = named
	default:
		result = metrics.ResultError
		http.Error(w, "comparison plan is required", http.StatusBadRequest)
		return
	}

	outcome, warnings, err := h.service.Compare(sess.Readings, current, comparison)
	if err != nil {
		result = metrics.ResultError
		respondAnalysisError(w, err)
		return
	}

	resp := map[string]any{
		"current":    outcome.Current,
		"comparison": outcome.Comparison,
		"savings":    outcome.Savings,
		"warnings":   warnings,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// resolveSession loads the session named by the request token, writing the
// error response itself when the session is missing or gone.
func resolveSession(w http.ResponseWriter, r *http.Request, store *session.Store) (*session.Session, bool) {
	sessionID := auth.SessionIDFromContext(r.Context())
	if sessionID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	sess, err := store.Get(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// planFromQuery overlays rate fields from query parameters onto a base plan.
func planFromQuery(r *http.Request, base tariff.RatePlan) (tariff.RatePlan, error) {
	plan := base
	fields := []struct {
		key    string
		target *float64
	}{
		{"anytime_rate", &plan.AnytimeRate},
		{"controlled_load_rate", &plan.ControlledLoadRate},
		{"solar_feed_in_rate", &plan.SolarFeedInRate},
		{"supply_daily_charge", &plan.SupplyDailyCharge},
		{"controlled_load_supply_daily_charge", &plan.ControlledLoadSupplyDailyCharge},
	}
	for _, field := range fields {
		value := r.URL.Query().Get(field.key)
		if value == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return tariff.RatePlan{}, errors.New(field.key + " must be a number")
		}
		*field.target = parsed
	}
	return plan, nil
}

func respondAnalysisError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, analysis.ErrInsufficientData) {
		http.Error(w, "not enough data for projection", http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, tariff.ErrNegativeRate) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
