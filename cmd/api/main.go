package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/config"
	"alfredoptarigan/applicant-portal/internal/handlers"
	applog "alfredoptarigan/applicant-portal/internal/logger"
	"alfredoptarigan/applicant-portal/internal/repositories"
	"alfredoptarigan/applicant-portal/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("config loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("sessions", cfg.Session.Store),
		zap.String("extractor", cfg.Extraction.Extractor),
		zap.String("validator", cfg.Extraction.Validator),
	)

	ctx := context.Background()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	postingRepo := repositories.NewPostingRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	resumeStore, err := newResumeStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize resume store", zap.Error(err))
	}

	sessionStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize session store", zap.Error(err))
	}

	var gemini services.GeminiService
	if cfg.Gemini.APIKey != "" {
		gemini, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log)
		if err != nil {
			log.Fatal("failed to initialize Gemini", zap.Error(err))
		}
	}

	pdfParser := services.NewPDFParserService()

	extractor, err := newSkillExtractor(cfg, gemini, pdfParser, postingRepo, log)
	if err != nil {
		log.Fatal("failed to initialize skill extractor", zap.Error(err))
	}

	validator, err := newAnswerValidator(cfg, gemini)
	if err != nil {
		log.Fatal("failed to initialize answer validator", zap.Error(err))
	}

	index, err := newApplicantIndex(ctx, cfg, gemini, log)
	if err != nil {
		log.Fatal("failed to initialize applicant index", zap.Error(err))
	}

	coordinator := services.NewSessionCoordinator(
		postingRepo,
		applicationRepo,
		sessionStore,
		services.NewIntakeService(resumeStore, extractor, log),
		validator,
		services.NewWeightedScorer(cfg.Scoring.AnswerWeight),
		index,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      "Applicant Portal API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.NewErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigin,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app.Group("/api/v1"),
		handlers.NewPostingHandler(postingRepo),
		handlers.NewSessionHandler(coordinator, cfg.Storage.MaxFileSize),
		handlers.NewApplicationHandler(applicationRepo, index),
	)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Applicant Portal API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/postings",
				"POST /api/v1/sessions",
				"PUT /api/v1/sessions/:id/job",
				"POST /api/v1/sessions/:id/resume",
				"PUT /api/v1/sessions/:id/skills",
				"PUT /api/v1/sessions/:id/answers/:skill",
				"POST /api/v1/sessions/:id/submit",
				"GET /api/v1/applications/:id",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func newResumeStore(ctx context.Context, cfg *config.Config) (services.ResumeStore, error) {
	switch cfg.Storage.Driver {
	case "local":
		return services.NewLocalResumeStore(cfg.Storage.UploadPath), nil
	case "s3":
		return services.NewS3ResumeStore(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (services.SessionStore, error) {
	switch cfg.Session.Store {
	case "memory":
		return services.NewMemorySessionStore(cfg.Session.TTL), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return services.NewRedisSessionStore(client, cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func newSkillExtractor(
	cfg *config.Config,
	gemini services.GeminiService,
	pdfParser services.PDFParserService,
	postingRepo repositories.PostingRepository,
	log *zap.Logger,
) (services.SkillExtractor, error) {
	switch cfg.Extraction.Extractor {
	case "keyword":
		return services.NewKeywordSkillExtractor(pdfParser, postingRepo), nil
	case "gemini":
		if gemini == nil {
			return nil, fmt.Errorf("SKILL_EXTRACTOR=gemini requires GEMINI_API_KEY")
		}
		return services.NewGeminiSkillExtractor(gemini, pdfParser, postingRepo, log), nil
	default:
		return nil, fmt.Errorf("unknown skill extractor %q", cfg.Extraction.Extractor)
	}
}

func newAnswerValidator(cfg *config.Config, gemini services.GeminiService) (services.AnswerValidator, error) {
	switch cfg.Extraction.Validator {
	case "lexicon":
		return services.NewLexiconAnswerValidator(), nil
	case "gemini":
		if gemini == nil {
			return nil, fmt.Errorf("ANSWER_VALIDATOR=gemini requires GEMINI_API_KEY")
		}
		return services.NewGeminiAnswerValidator(gemini), nil
	default:
		return nil, fmt.Errorf("unknown answer validator %q", cfg.Extraction.Validator)
	}
}

// newApplicantIndex returns a nil index when Qdrant is not configured.
func newApplicantIndex(ctx context.Context, cfg *config.Config, gemini services.GeminiService, log *zap.Logger) (services.ApplicantIndex, error) {
	if !cfg.Qdrant.Enabled() {
		return nil, nil
	}
	if gemini == nil {
		return nil, fmt.Errorf("QDRANT_URL requires GEMINI_API_KEY for embeddings")
	}

	index, err := services.NewApplicantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, gemini, log)
	if err != nil {
		return nil, err
	}
	if err := index.InitCollection(ctx); err != nil {
		return nil, err
	}

	log.Info("applicant index ready", zap.String("collection", cfg.Qdrant.Collection))
	return index, nil
}
