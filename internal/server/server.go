package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Caoophuongg/quickcv/internal/config"
	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/generate"
	"github.com/Caoophuongg/quickcv/internal/llm"
	"github.com/Caoophuongg/quickcv/internal/server/middleware"
	"github.com/Caoophuongg/quickcv/internal/server/ratelimit"
	"github.com/Caoophuongg/quickcv/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	llmClient   llm.Client
	uploads     *storage.Store
	rateLimiter *ratelimit.Limiter

	jwtService      *JWTService
	userService     *UserService
	authHandler     *AuthHandler
	resumeHandler   *ResumeHandler
	generateHandler *GenerateHandler
	blogHandler     *BlogHandler
	adminHandler    *AdminHandler
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	uploads, err := storage.New(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload store: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		db:          database,
		llmClient:   llmClient,
		uploads:     uploads,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s.jwtService = NewJWTService(jwtConfig)
	s.userService = NewUserService(database, passwordConfig, uploads)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	s.resumeHandler = NewResumeHandler(database, uploads)
	s.generateHandler = NewGenerateHandler(generate.NewService(llmClient, llm.TierStandard))
	s.blogHandler = NewBlogHandler(database)
	s.adminHandler = NewAdminHandler(database, database, database, uploads)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export holds the connection
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes assembles the full route table.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.AdminOnly()(h))
	}

	// Public
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/templates", handleListTemplates)
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /api/blogs", s.blogHandler.ListPublished)
	mux.HandleFunc("GET /api/blogs/{slug}", s.blogHandler.GetBySlug)

	// Uploaded files (avatars, photos, thumbnails)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploads.Root()))))

	// Authenticated account surface
	mux.Handle("GET /api/auth/me", authed(http.HandlerFunc(s.authHandler.Me)))
	mux.Handle("PATCH /api/auth/profile", authed(http.HandlerFunc(s.authHandler.UpdateProfile)))
	mux.Handle("POST /api/auth/change-password", authed(http.HandlerFunc(s.authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/avatar", authed(http.HandlerFunc(s.authHandler.UploadAvatar)))

	// Resumes
	mux.Handle("GET /api/resumes", authed(http.HandlerFunc(s.resumeHandler.List)))
	mux.Handle("POST /api/resumes", authed(http.HandlerFunc(s.resumeHandler.Create)))
	mux.Handle("POST /api/resumes/import", authed(http.HandlerFunc(s.resumeHandler.Import)))
	mux.Handle("GET /api/resumes/{id}", authed(http.HandlerFunc(s.resumeHandler.Get)))
	mux.Handle("PUT /api/resumes/{id}", authed(http.HandlerFunc(s.resumeHandler.Update)))
	mux.Handle("DELETE /api/resumes/{id}", authed(http.HandlerFunc(s.resumeHandler.Delete)))
	mux.Handle("POST /api/resumes/{id}/photo", authed(http.HandlerFunc(s.resumeHandler.UploadPhoto)))
	mux.Handle("GET /api/resumes/{id}/export", authed(http.HandlerFunc(s.resumeHandler.Export)))

	// Content generators
	mux.Handle("POST /api/generate/summary", authed(http.HandlerFunc(s.generateHandler.Summary)))
	mux.Handle("POST /api/generate/work-experience", authed(http.HandlerFunc(s.generateHandler.WorkExperience)))
	mux.Handle("POST /api/generate/education", authed(http.HandlerFunc(s.generateHandler.Education)))
	mux.Handle("POST /api/generate/skills", authed(http.HandlerFunc(s.generateHandler.Skills)))
	mux.Handle("POST /api/generate/goals", authed(http.HandlerFunc(s.generateHandler.Goals)))

	// Admin
	mux.Handle("GET /api/admin/blogs", admin(s.blogHandler.AdminList))
	mux.Handle("POST /api/admin/blogs", admin(s.blogHandler.AdminCreate))
	mux.Handle("GET /api/admin/blogs/{id}", admin(s.blogHandler.AdminGet))
	mux.Handle("PATCH /api/admin/blogs/{id}", admin(s.blogHandler.AdminUpdate))
	mux.Handle("DELETE /api/admin/blogs/{id}", admin(s.blogHandler.AdminDelete))
	mux.Handle("POST /api/admin/upload-thumbnail", admin(s.adminHandler.UploadThumbnail))
	mux.Handle("GET /api/admin/users", admin(s.adminHandler.ListUsers))
	mux.Handle("PATCH /api/admin/users/{id}", admin(s.adminHandler.UpdateUserRole))
	mux.Handle("DELETE /api/admin/users/{id}", admin(s.adminHandler.DeleteUser))
	mux.Handle("GET /api/admin/dashboard", admin(s.adminHandler.Dashboard))
	mux.Handle("GET /api/admin/dashboard/template-usage", admin(s.adminHandler.TemplateUsage))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Failed to close LLM client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	writeJSON(w, http.StatusTooManyRequests, response)
}
