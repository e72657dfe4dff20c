package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justsurfingit/automate/internal/auth"
	"github.com/justsurfingit/automate/internal/config"
	"github.com/justsurfingit/automate/internal/database"
	"github.com/justsurfingit/automate/internal/handlers"
	"github.com/justsurfingit/automate/internal/scraper"
	"github.com/justsurfingit/automate/internal/services"
	"github.com/justsurfingit/automate/internal/storage"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	store := storage.NewGormStore(db)

	// 3. Initialize Core Services (Dependencies)
	remote := scraper.New(cfg.ScraperURL, nil)
	jobService := services.NewJobService(store, remote, cfg.JobCacheTTL, cfg.DefaultSearch, cfg.DefaultLocation)
	profileService := services.NewProfileService(store, cfg.ProfileCacheTTL)
	applicationService := services.NewApplicationService(jobService, profileService, remote)

	// 4. Optional integrations
	llmService := services.NewLLMService(nil)
	if cfg.LLM.Enabled() {
		gen, err := services.NewGeminiGenerator(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			log.Printf("⚠️  Job analysis disabled: %v", err)
		} else {
			llmService.Generator = gen
			log.Println("✅ Gemini client ready.")
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, job analysis disabled.")
	}

	var githubAuth *auth.GitHubAuth
	if cfg.GitHub.Enabled() {
		githubAuth = auth.NewGitHubAuth(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret, cfg.GitHub.RedirectURL, store)
	} else {
		log.Println("⚠️  GITHUB_CLIENT_ID not set, GitHub connect disabled.")
	}

	// 5. Setup Router
	router := handlers.NewRouter(handlers.Handlers{
		Jobs:         handlers.NewJobHandler(jobService, profileService, llmService),
		Applications: handlers.NewApplicationHandler(applicationService),
		Profile:      handlers.NewProfileHandler(profileService),
		GitHub:       handlers.NewGitHubHandler(githubAuth, profileService),
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	applicationService.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Forced shutdown: %v", err)
	}
}
