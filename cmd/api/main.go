package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"recruiter-chat-backend/cmd"
	"recruiter-chat-backend/internal/api"
	"recruiter-chat-backend/internal/chat"
	"recruiter-chat-backend/internal/database"
	"recruiter-chat-backend/internal/llm"
)

type APIConfig struct {
	DatabaseURL          string        `env:"DATABASE_URL" envDefault:"recruiter-chat.db"`
	LLMAPIKey            string        `env:"LLM_API_KEY"`
	LLMBaseURL           string        `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel             string        `env:"LLM_MODEL" envDefault:"llama-3.1-8b-instant"`
	LLMMaxTokens         int           `env:"LLM_MAX_TOKENS" envDefault:"1000"`
	LLMTemperature       float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTimeout           time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	APIPort              string        `env:"API_PORT" envDefault:"8000"`
	CandidateProfilePath string        `env:"CANDIDATE_PROFILE_PATH"`
}

func main() {
	log.Println("Starting Recruiter Chat API...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	systemPrompt := llm.DefaultSystemPrompt
	if cfg.CandidateProfilePath != "" {
		data, err := os.ReadFile(cfg.CandidateProfilePath)
		if err != nil {
			log.Fatalf("Failed to read candidate profile '%s': %v", cfg.CandidateProfilePath, err)
		}
		systemPrompt = string(data)
	}

	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY is not set, chat requests will fail until it is configured")
	}

	completer := llm.NewClient(llm.Config{
		BaseURL:      cfg.LLMBaseURL,
		APIKey:       cfg.LLMAPIKey,
		Model:        cfg.LLMModel,
		SystemPrompt: systemPrompt,
		MaxTokens:    cfg.LLMMaxTokens,
		Temperature:  cfg.LLMTemperature,
		Timeout:      cfg.LLMTimeout,
	})

	store := chat.NewStore(db)
	orchestrator := chat.NewOrchestrator(store, completer)

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log requests
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set request timeout
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"}, // Configure this properly for production
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// API Handlers (dependency injection)
	apiHandler := api.NewChatService(store, orchestrator)
	apiHandler.AddRoutes(r)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
