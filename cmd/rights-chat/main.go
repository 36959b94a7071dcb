package main

import (
	"context"
	"flag"
	"fmt"
	"log"

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
)

func main() {
	configPath := flag.String("config", "configs/assistant.yaml", "Path to assistant config YAML")
	query := flag.String("query", "", "Question to ask (required)")
	lang := flag.String("lang", "", "Language code (en, ta, bn, tl, id); overrides config")
	flag.Parse()

	if *query == "" {
		log.Fatal("--query required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *lang != "" {
		cfg.Language = *lang
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logger.Sync()

	assistant, err := buildAssistant(cfg, logger)
	if err != nil {
		log.Fatalf("build assistant: %v", err)
	}

	ctx := context.Background()
	resp, err := assistant.Respond(ctx, rights.Query{Text: *query, Language: cfg.Language})
	if err != nil {
		log.Fatalf("respond: %v", err)
	}

	fmt.Println(resp.Text)

	client := &llm.Client{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		APIKey:  cfg.LLM.APIKey,
	}
	if !client.Enabled() {
		return
	}
	summary, err := client.Summarize(ctx, *query, resp)
	if err != nil {
		logger.Warn("llm summarize", zap.Error(err))
		return
	}
	fmt.Println()
	fmt.Println("In plain words:")
	fmt.Println(summary)
}

func buildAssistant(cfg *config.Config, logger *zap.Logger) (*rights.Assistant, error) {
	base, err := kb.Load(cfg.KBPath)
	if err != nil {
		return nil, err
	}

	var stopwords []string
	if cfg.Stopwords != "" {
		stopwords, err = normalize.LoadStopwords(cfg.Stopwords)
		if err != nil {
			return nil, err
		}
	}
	tokenizer := normalize.NewTokenizer(stopwords)

	catalog := i18n.NewCatalog()
	if cfg.Catalog != "" {
		if err := catalog.Merge(cfg.Catalog); err != nil {
			return nil, err
		}
	}

	return rights.New(rights.Options{
		KnowledgeBase: base,
		Tokenizer:     tokenizer,
		Retriever:     match.NewKeywordMatcher(base, match.WithMinOverlap(cfg.MinOverlap)),
		Formatter:     render.NewFormatter(catalog, base, logger),
		Logger:        logger,
	})
}
