package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/analyze"
	"github.com/fwojciec/schemascan/anthropic"
	"github.com/fwojciec/schemascan/extract"
	"github.com/fwojciec/schemascan/gemini"
	"github.com/fwojciec/schemascan/generate"
	"github.com/fwojciec/schemascan/goquery"
	"github.com/fwojciec/schemascan/htmltomarkdown"
	schemahttp "github.com/fwojciec/schemascan/http"
	"github.com/fwojciec/schemascan/openai"
	"github.com/fwojciec/schemascan/readability"
	"github.com/fwojciec/schemascan/rod"
	schemaslog "github.com/fwojciec/schemascan/slog"
	"github.com/fwojciec/schemascan/sqlite"
	"github.com/fwojciec/schemascan/trafilatura"
)

// wireAnalyze builds the analysis pipeline for c and stores it in deps.
// The returned function releases the fetcher.
func (m *Main) wireAnalyze(ctx context.Context, c *AnalyzeCmd, deps *Dependencies) (func(), error) {
	logger := deps.Logger

	var fetcher schemascan.Fetcher
	if c.Static {
		fetcher = schemahttp.NewFetcher(schemahttp.WithTimeout(c.Timeout))
	} else {
		manager := []rod.ManagerOption{
			rod.WithNoSandbox(c.NoSandbox),
			rod.WithLogger(logger),
		}
		if c.ChromePath != "" {
			manager = append(manager, rod.WithChromePath(c.ChromePath))
		}
		f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithManagerOptions(manager...))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	}
	fetcher = schemaslog.NewLoggingFetcher(fetcher, logger)

	var extractor schemascan.ContentExtractor
	switch c.ContentExtractor {
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = trafilatura.NewExtractor()
	}

	opts := []generate.Option{
		generate.WithTimeout(c.GenerateTimeout),
		generate.WithLogger(logger),
	}
	text, model, err := textGenerator(ctx, c, logger)
	if err != nil {
		fetcher.Close()
		return nil, err
	}
	if text != nil {
		if c.Provider == "gemini" && c.TokenBudget > 0 {
			counter, err := gemini.NewTokenCounter(model)
			if err != nil {
				fetcher.Close()
				return nil, fmt.Errorf("failed to create token counter: %w", err)
			}
			opts = append(opts, generate.WithTokenBudget(counter, c.TokenBudget))
		}
		if m.DB != nil && !c.NoCache {
			cache := sqlite.NewGenerationCache(m.DB, text, c.Provider+"/"+model, sqlite.WithLogger(logger))
			if c.CacheTTL > 0 {
				if n, err := cache.Purge(ctx, c.CacheTTL); err != nil {
					logger.Warn("failed to purge generation cache", "error", err)
				} else if n > 0 {
					logger.Debug("purged generation cache", "removed", n)
				}
			}
			text = cache
		}
		text = schemaslog.NewLoggingTextGenerator(text, model, logger)
	}

	analyzer := &analyze.Analyzer{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Extractor:   extract.NewAggregator(logger),
		Content:     goquery.NewContentAnalyzer(extractor, htmltomarkdown.NewConverter()),
		Generator:   generate.NewGenerator(text, opts...),
		Results:     deps.Results,
		RateLimiter: analyze.NewDomainLimiter(c.RateLimit),
		Logger:      logger,
		Force:       c.Force,
	}
	if !c.NoHistory {
		analyzer.Analyses = deps.Analyses
	}

	deps.Batch = &analyze.Batch{Analyzer: analyzer, Concurrency: c.Concurrency}
	deps.Sitemaps = schemaslog.NewLoggingSitemapService(schemahttp.NewSitemapService(nil), logger)

	return func() { fetcher.Close() }, nil
}

// textGenerator returns the model client for the selected provider and the
// model it uses. A provider without an API key disables the generative
// tier with a warning; generation then uses the heuristic only.
func textGenerator(ctx context.Context, c *AnalyzeCmd, logger *slog.Logger) (schemascan.TextGenerator, string, error) {
	keyMissing := func(env string) (schemascan.TextGenerator, string, error) {
		logger.Warn("API key not set, generating with heuristics only", "provider", c.Provider, "env", env)
		return nil, "", nil
	}

	switch c.Provider {
	case "openai":
		if c.OpenAIKey == "" {
			return keyMissing("OPENAI_API_KEY")
		}
		g, err := openai.NewClientGenerator(c.OpenAIKey, c.Model)
		if err != nil {
			return nil, "", err
		}
		return g, g.Model(), nil
	case "gemini":
		if c.GeminiKey == "" {
			return keyMissing("GEMINI_API_KEY")
		}
		g, err := gemini.NewClientGenerator(ctx, c.GeminiKey, c.Model)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return g, g.Model(), nil
	case "anthropic":
		if c.AnthropicKey == "" {
			return keyMissing("ANTHROPIC_API_KEY")
		}
		g, err := anthropic.NewClientGenerator(c.AnthropicKey, c.Model)
		if err != nil {
			return nil, "", err
		}
		return g, g.Model(), nil
	}
	return nil, "", nil
}
