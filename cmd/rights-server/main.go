package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/hellofriends/rights-engine/internal/llm"
	"github.com/hellofriends/rights-engine/internal/logging"
	"github.com/hellofriends/rights-engine/pkg/rights"
	"github.com/hellofriends/rights-engine/pkg/rights/config"
	"github.com/hellofriends/rights-engine/pkg/rights/i18n"
	"github.com/hellofriends/rights-engine/pkg/rights/kb"
	"github.com/hellofriends/rights-engine/pkg/rights/match"
	"github.com/hellofriends/rights-engine/pkg/rights/normalize"
	"github.com/hellofriends/rights-engine/pkg/rights/render"
	"github.com/hellofriends/rights-engine/pkg/rights/store"
	"github.com/hellofriends/rights-engine/pkg/rights/store/memstore"
	"github.com/hellofriends/rights-engine/pkg/rights/store/sqlite"
	"github.com/hellofriends/rights-engine/pkg/rights/uploads"
)

func main() {
	configPath := "configs/assistant.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// A knowledge base that fails to load is fatal: the server must show
	// a maintenance state rather than answer from partial data.
	base, err := kb.Load(cfg.KBPath)
	if err != nil {
		logger.Fatal("knowledge base unavailable, refusing to serve", zap.Error(err))
	}
	logger.Info("knowledge base loaded",
		zap.String("path", cfg.KBPath),
		zap.Int("entries", base.Len()))

	var st store.Store
	if cfg.DBPath != "" {
		st, err = sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			logger.Fatal("open store", zap.Error(err))
		}
	} else {
		st = memstore.New()
	}
	defer st.Close()

	scanner := uploads.NewScanner(cfg.UploadsDir, st)
	if n, err := scanner.Sync(ctx); err != nil {
		logger.Warn("sync uploads", zap.Error(err))
	} else if n > 0 {
		logger.Info("uploads registered", zap.Int("count", n))
	}

	assistant, err := buildAssistant(cfg, base, st, logger)
	if err != nil {
		logger.Fatal("build assistant", zap.Error(err))
	}

	client := &llm.Client{
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.Model,
		EmbedModel: cfg.LLM.EmbedModel,
		APIKey:     cfg.LLM.APIKey,
	}

	h := &handlers{
		assistant: assistant,
		scanner:   scanner,
		st:        st,
		llm:       client,
		log:       logger,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/healthz", h.health)
	app.Get("/metrics", metricsHandler())

	api := app.Group("/api/v1")
	api.Post("/chat", h.chat)
	api.Get("/stats", h.stats)
	api.Post("/uploads", h.upload)
	api.Get("/uploads", h.listUploads)

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func buildAssistant(cfg *config.Config, base *kb.KnowledgeBase, st store.Store, logger *zap.Logger) (*rights.Assistant, error) {
	var stopwords []string
	var err error
	if cfg.Stopwords != "" {
		stopwords, err = normalize.LoadStopwords(cfg.Stopwords)
		if err != nil {
			return nil, err
		}
	}

	catalog := i18n.NewCatalog()
	if cfg.Catalog != "" {
		if err := catalog.Merge(cfg.Catalog); err != nil {
			return nil, err
		}
	}

	return rights.New(rights.Options{
		KnowledgeBase: base,
		Tokenizer:     normalize.NewTokenizer(stopwords),
		Retriever:     match.NewKeywordMatcher(base, match.WithMinOverlap(cfg.MinOverlap)),
		Formatter:     render.NewFormatter(catalog, base, logger),
		Store:         st,
		Logger:        logger,
	})
}
