// Package web implements the HTTP server of texpress: PDF compilation, LaTeX generation
// and the JSON API for status and job history
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/texpress/app/generate"
	"github.com/umputun/texpress/app/notify"
	"github.com/umputun/texpress/app/typeset"
	"github.com/umputun/texpress/app/web/persistence"
)

//go:generate moq -out mocks/typesetter.go -pkg mocks -skip-ensure -fmt goimports . Typesetter
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// Typesetter renders LaTeX to PDF, implemented by typeset.Service
type Typesetter interface {
	Render(ctx context.Context, source string, deliver func(doc typeset.Document) error) (typeset.Result, error)
}

// Generator rewrites a resume for a job description, implemented by generate.Generator
type Generator interface {
	Rewrite(ctx context.Context, req generate.Request) (string, error)
}

// Persistence defines job history storage, implemented by persistence.SQLiteStore
type Persistence interface {
	RecordJob(rec persistence.JobRecord) error
	ListJobs(limit int) ([]persistence.JobRecord, error)
	GetJob(id string) (persistence.JobRecord, error)
	Stats() (persistence.Stats, error)
}

// Notifier reports failed jobs, implemented by notify.Notifier
type Notifier interface {
	Send(ctx context.Context, f notify.Failure) error
	Enabled() bool
}

// Server represents the web server
type Server struct {
	typesetter  Typesetter
	generator   Generator
	store       Persistence
	notifier    Notifier
	baseURL     string
	staticDir   string
	version     string
	maxBodySize int64
	rateLimit   float64
	settings    Settings
	startedAt   time.Time
}

// Config holds server configuration. Typesetter is required, everything else is optional.
type Config struct {
	Typesetter  Typesetter
	Generator   Generator   // nil disables generation, requests fail with 500
	Store       Persistence // nil disables job history
	Notifier    Notifier    // nil disables failure reports
	BaseURL     string      // base URL path for reverse proxy (e.g., /texpress), empty for root
	StaticDir   string      // directory with frontend files served at /, empty to disable
	Version     string
	MaxBodySize int64   // request body limit, defaults to 1MB
	RateLimit   float64 // max requests per second per IP for generation routes, 0 to disable
	Settings    Settings
}

// Settings holds safe-to-display runtime configuration reported by the status endpoint
type Settings struct {
	CompilerBinary   string        `json:"compiler_binary"`
	CompilerTimeout  time.Duration `json:"compiler_timeout"`
	WorkDir          string        `json:"work_dir"`
	GeneratorModel   string        `json:"generator_model,omitempty"`
	GeneratorEnabled bool          `json:"generator_enabled"`
	HistoryEnabled   bool          `json:"history_enabled"`
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Typesetter == nil {
		return nil, fmt.Errorf("web server initialization failed: Typesetter is required")
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = 1024 * 1024
	}

	return &Server{
		typesetter:  cfg.Typesetter,
		generator:   cfg.Generator,
		store:       cfg.Store,
		notifier:    cfg.Notifier,
		baseURL:     cfg.BaseURL,
		staticDir:   cfg.StaticDir,
		version:     cfg.Version,
		maxBodySize: maxBody,
		rateLimit:   cfg.RateLimit,
		settings:    cfg.Settings,
		startedAt:   time.Now(),
	}, nil
}

// Run starts the web server and blocks until ctx canceled or server failed
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
		// no WriteTimeout, compilation time is bounded by the compiler timeout only
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// handler returns the http.Handler with base URL wrapping applied
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.baseURL == "" {
		return routes
	}

	mux := http.NewServeMux()
	// handle base URL without trailing slash - redirect to with trailing slash
	mux.HandleFunc(s.baseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.baseURL+"/", http.StatusMovedPermanently)
	})
	mux.Handle(s.baseURL+"/", http.StripPrefix(s.baseURL, routes))
	return mux
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		jsonErrors, // outermost, turns plain text errors of the middlewares below into JSON
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("texpress", "umputun", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(s.maxBodySize),
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
		corsMiddleware,
	)

	// generation routes, optionally rate limited per client ip
	router.Group().Route(func(gen *routegroup.Bundle) {
		if s.rateLimit > 0 {
			log.Printf("[INFO] rate limit enabled, %.2f req/s per ip", s.rateLimit)
			gen.Use(tollbooth.HTTPMiddleware(s.makeLimiter()))
		}
		gen.HandleFunc("POST /generate-pdf", s.handleGeneratePDF)
		gen.HandleFunc("POST /generate-latex", s.handleGenerateLatex)
	})

	// JSON API for status, history and request schemas
	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /status", s.handleAPIStatus)
		api.HandleFunc("GET /jobs", s.handleAPIJobs)
		api.HandleFunc("GET /jobs/{id}", s.handleAPIJob)
		api.HandleFunc("GET /schema", s.handleAPISchema)
	})

	// preflight requests from browser frontends, headers set by corsMiddleware
	router.HandleFunc("OPTIONS /", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	if s.staticDir != "" {
		log.Printf("[INFO] serving static files from %s", s.staticDir)
		router.HandleFiles("/", http.Dir(s.staticDir))
	}

	return router
}

func (s *Server) makeLimiter() *limiter.Limiter {
	lmt := tollbooth.NewLimiter(s.rateLimit, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"}) // RealIP middleware already resolved proxies
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"message":"Too many requests"}`)
	return lmt
}

// corsMiddleware allows browser frontends served from other origins to call the API
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, X-Job-ID")
		next.ServeHTTP(w, r)
	})
}

// jsonErrors rewrites non-JSON error responses, like the ones from rest.Recoverer, rest.SizeLimit
// and the mux itself, into JSON {"message": <status text>}
func jsonErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
	})
}

type jsonErrorWriter struct {
	http.ResponseWriter
	wroteHeader bool
	replaced    bool // original body is dropped
}

func (j *jsonErrorWriter) WriteHeader(code int) {
	if j.wroteHeader {
		return
	}
	j.wroteHeader = true
	h := j.Header()
	if code < http.StatusBadRequest || strings.HasPrefix(h.Get("Content-Type"), "application/json") {
		j.ResponseWriter.WriteHeader(code)
		return
	}

	j.replaced = true
	h.Del("Content-Length")
	h.Set("Content-Type", "application/json")
	j.ResponseWriter.WriteHeader(code)
	if err := json.NewEncoder(j.ResponseWriter).Encode(ErrorResponse{Message: http.StatusText(code)}); err != nil {
		log.Printf("[WARN] failed to write error response: %v", err)
	}
}

func (j *jsonErrorWriter) Write(b []byte) (int, error) {
	if !j.wroteHeader {
		j.WriteHeader(http.StatusOK)
	}
	if j.replaced {
		return len(b), nil
	}
	return j.ResponseWriter.Write(b)
}

// Unwrap allows http.ResponseController to reach the underlying writer
func (j *jsonErrorWriter) Unwrap() http.ResponseWriter {
	return j.ResponseWriter
}
