package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/config"
	"quizmatch-service/internal/domain"
	"quizmatch-service/internal/infra/memory"
	pgstore "quizmatch-service/internal/infra/postgres"
	redisstore "quizmatch-service/internal/infra/redis"
	transport "quizmatch-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quizmatch server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Stores fall back to in-memory implementations when no backend is
	// configured; useful for local development.
	var profiles app.ProfileStore
	var matches app.MatchStore
	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(domain.DefaultQuestions())
	if pool != nil {
		profiles = pgstore.NewProfileStore(pool)
		matches = pgstore.NewMatchStore(pool)
		loader = pgstore.NewQuestionLoader(pool)
	} else {
		memProfiles := memory.NewProfileStore()
		profiles = memProfiles
		matches = memory.NewMatchStore(memProfiles)
	}

	questionTTL := config.TTLDuration(cfg.Questions.CacheTTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = redisstore.NewQuestionRepository(redisClient, loader, questionTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, questionTTL)
	}

	sessionTTL := config.TTLDuration(cfg.Auth.SessionTTL, 24*time.Hour)
	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore(sessionTTL)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		log.Printf("warning: no jwt secret configured, using an insecure default")
		secret = "dev-insecure-secret"
	}

	authService := app.NewAuthService(profiles, sessions, secret, sessionTTL)
	matchService := app.NewMatchService(profiles, matches)
	quizService := app.NewQuizService(questions, profiles, matchService, memory.NewAttemptStore())

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(authService, quizService, matchService, profiles),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizmatch service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
