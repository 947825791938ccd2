package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillsync/internal/config"
	"github.com/jonathan/skillsync/internal/db"
	"github.com/jonathan/skillsync/internal/embedding"
	"github.com/jonathan/skillsync/internal/gap"
	"github.com/jonathan/skillsync/internal/llm"
	"github.com/jonathan/skillsync/internal/matching"
	"github.com/jonathan/skillsync/internal/taxonomy"
	"github.com/jonathan/skillsync/internal/vectorstore"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it;
// tests substitute an in-memory implementation.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error)
	UpsertProfile(ctx context.Context, p *db.Profile) error
}

// Analyzer runs a gap analysis for a goal against a skill map.
type Analyzer interface {
	Analyze(ctx context.Context, goal string, skills *matching.SkillMap) ([]gap.Result, error)
}

// Server is the HTTP server with its collaborators.
type Server struct {
	httpServer *http.Server
	database   *db.DB
	store      Store
	engine     Analyzer
	llm        llm.Client
	auth       *config.AuthConfig
	jwt        *JWTService
	validator  *validator.Validate
	log        *zap.Logger
}

// New wires the server from configuration: database, taxonomy, embedding
// provider, vector index, gap engine and the optional LLM client for resume
// extraction and summaries.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	provider, err := embedding.NewOpenAIClient(embedding.OpenAIConfig{
		BaseURL:   cfg.EmbeddingBaseURL,
		APIKey:    cfg.EmbeddingAPIKey,
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDim,
		Timeout:   cfg.HTTPTimeout,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	index, err := vectorstore.NewQdrant(vectorstore.QdrantConfig{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	matcher := gap.NewMatcher(provider, index, gap.Params{
		Limit:          cfg.ServiceMatcher.Limit,
		ScoreThreshold: cfg.ServiceMatcher.ScoreThreshold,
	})
	engine := gap.NewEngine(matcher, tax, log)

	authCfg, err := config.NewAuthConfig()
	if err != nil {
		database.Close()
		return nil, err
	}

	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			database.Close()
			return nil, err
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, resume extraction and summaries disabled")
	}

	s := &Server{
		database:  database,
		store:     database,
		engine:    engine,
		llm:       llmClient,
		auth:      authCfg,
		jwt:       NewJWTService(authCfg),
		validator: validator.New(),
		log:       log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.routes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the request multiplexer. Split out so handler tests can
// exercise the routing without a listening socket.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /profile", s.jwt.RequireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /profile", s.jwt.RequireAuth(s.handlePutProfile))
	mux.HandleFunc("POST /profile/resume", s.jwt.RequireAuth(s.handleUploadResume))
	mux.HandleFunc("POST /analyze", s.jwt.RequireAuth(s.handleAnalyze))
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start listens for requests until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.close()
	return nil
}

func (s *Server) close() {
	if s.database != nil {
		s.database.Close()
	}
	if s.llm != nil {
		if err := s.llm.Close(); err != nil {
			s.log.Warn("failed to close llm client", zap.Error(err))
		}
	}
}

func (s *Server) logError(r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
