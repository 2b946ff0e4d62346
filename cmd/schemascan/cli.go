package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/analyze"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyses schemascan.AnalysisService
	Results  schemascan.ResultStore
	Sitemaps schemascan.SitemapService
	Batch    *analyze.Batch
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `name:"db" env:"SCHEMASCAN_DB" help:"History database path (default ~/.schemascan/schemascan.db)"`

	Analyze  AnalyzeCmd  `cmd:"" help:"Extract or generate structured data for web pages"`
	Validate ValidateCmd `cmd:"" help:"Validate a saved result against schema.org conventions"`
	History  HistoryCmd  `cmd:"" help:"List recorded analyses"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URLs             []string      `arg:"" name:"url" help:"Page URLs to analyze"`
	Output           string        `short:"o" default:"output" env:"SCHEMASCAN_OUTPUT" help:"Directory for result files"`
	Force            bool          `short:"f" help:"Generate structured data even if the page already has some"`
	Provider         string        `default:"openai" enum:"none,openai,gemini,anthropic" help:"Model provider for generation (none uses the heuristic only)"`
	Model            string        `help:"Model name (provider default if empty)"`
	Static           bool          `help:"Fetch pages with plain HTTP instead of a headless browser"`
	ChromePath       string        `name:"chrome" env:"SCHEMASCAN_CHROME" help:"Chrome or Chromium binary (searched for if empty)"`
	NoSandbox        bool          `help:"Disable the Chrome sandbox (needed when running as root in containers)"`
	Sitemap          bool          `help:"Treat each URL as a site and analyze the pages its sitemaps list"`
	Filter           []string      `short:"F" name:"filter" help:"Only analyze sitemap URLs matching this regex (repeatable)"`
	Exclude          []string      `short:"X" name:"exclude" help:"Skip sitemap URLs matching this regex (repeatable)"`
	Concurrency      int           `short:"c" default:"4" help:"Pages analyzed at once"`
	Timeout          time.Duration `default:"30s" help:"Per-page fetch timeout"`
	GenerateTimeout  time.Duration `default:"60s" help:"Model call timeout"`
	RateLimit        float64       `default:"1" help:"Requests per second per domain (0 disables)"`
	TokenBudget      int           `help:"Maximum prompt tokens; the content excerpt is shortened to fit (gemini only)"`
	NoHistory        bool          `help:"Do not record analyses in the history database"`
	NoCache          bool          `help:"Do not reuse cached model responses"`
	CacheTTL         time.Duration `name:"cache-ttl" default:"720h" help:"Drop cached model responses older than this (0 keeps them)"`
	ContentExtractor string        `default:"trafilatura" enum:"trafilatura,readability" help:"Main content extractor"`

	OpenAIKey    string `name:"openai-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	GeminiKey    string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	AnthropicKey string `name:"anthropic-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	File string `arg:"" optional:"" help:"Result file written by analyze"`
	ID   string `help:"Validate a recorded analysis instead of a file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only show analyses of this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of analyses to show"`
	Offset int    `help:"Number of analyses to skip"`
	Delete string `help:"Delete the analysis with this ID"`
}

// needsDB reports whether command, the first word of the selected command,
// uses the history database.
func (c *CLI) needsDB(command string) bool {
	switch command {
	case "history":
		return true
	case "validate":
		return c.Validate.ID != ""
	case "analyze":
		return !c.Analyze.NoHistory || (!c.Analyze.NoCache && c.Analyze.Provider != "none")
	}
	return false
}
