package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	analysisapp "powerplan/internal/analysis/application"
	apihttp "powerplan/internal/api/http"
	"powerplan/internal/auth"
	"powerplan/internal/observability/metrics"
	"powerplan/internal/session"
	tariffapp "powerplan/internal/tariff/application"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init()

	plans, err := tariffapp.LoadPlanConfig()
	if err != nil {
		logger.Fatalf("plan config error: %v", err)
	}
	logger.Printf("current plan %q, %d comparison plan(s)", plans.Current.Name, len(plans.Comparisons))

	store := session.NewStore(cfg.SessionTTL, nil)
	go sweepSessions(store, cfg.SweepInterval, logger)

	service := analysisapp.NewAnalysisService()

	uploadHandler, err := apihttp.NewUploadHandler(store, cfg.SessionSecret, cfg.TokenTTL, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatalf("upload handler error: %v", err)
	}
	readingsHandler := apihttp.NewReadingsHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/readings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			uploadHandler.ServeHTTP(w, r)
			return
		}
		readingsHandler.ServeHTTP(w, r)
	})
	mux.Handle("/api/v1/intervals", apihttp.NewIntervalsHandler(store, service))
	mux.Handle("/api/v1/usage/monthly", apihttp.NewMonthlyUsageHandler(store, service, plans))
	mux.Handle("/api/v1/estimate", apihttp.NewEstimateHandler(store, service, plans))
	mux.Handle("/api/v1/compare", apihttp.NewCompareHandler(store, service, plans))
	mux.Handle("/api/v1/exports/intervals.csv", apihttp.NewExportIntervalsCSVHandler(store, service))
	mux.Handle("/api/v1/exports/estimate.xlsx", apihttp.NewExportEstimateXLSXHandler(store, service, plans))
	mux.Handle("/api/v1/exports/estimate.pdf", apihttp.NewExportEstimatePDFHandler(store, service, plans))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	authMiddleware := auth.NewMiddleware(cfg.SessionSecret, auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil))

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

func sweepSessions(store *session.Store, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		remaining := store.Sweep()
		metrics.SetActiveSessions(remaining)
		logger.Printf("session sweep: %d live", remaining)
	}
}

type config struct {
	HTTPAddr       string
	SessionSecret  []byte
	SessionTTL     time.Duration
	TokenTTL       time.Duration
	SweepInterval  time.Duration
	MaxUploadBytes int64
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		SessionTTL:     getenvDuration("SESSION_TTL", 24*time.Hour),
		TokenTTL:       getenvDuration("TOKEN_TTL", 24*time.Hour),
		SweepInterval:  getenvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		MaxUploadBytes: int64(getenvIntDefault("MAX_UPLOAD_BYTES", 5<<20)),
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		// Sessions live in memory only, so a per-process secret works:
		// tokens cannot outlive the store they point into anyway.
		cfg.SessionSecret = []byte(randomSecret())
		log.Print("SESSION_SECRET not set, using ephemeral secret")
	}
	return cfg
}

func randomSecret() string {
	var buf [32]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
