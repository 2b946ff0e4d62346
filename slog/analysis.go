package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.AnalysisService = (*LoggingAnalysisService)(nil)

// LoggingAnalysisService wraps an AnalysisService with debug logging.
type LoggingAnalysisService struct {
	next   schemascan.AnalysisService
	logger *slog.Logger
}

// NewLoggingAnalysisService creates a new LoggingAnalysisService.
func NewLoggingAnalysisService(next schemascan.AnalysisService, logger *slog.Logger) *LoggingAnalysisService {
	return &LoggingAnalysisService{next: next, logger: logger}
}

func (s *LoggingAnalysisService) CreateAnalysis(ctx context.Context, a *schemascan.Analysis) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create analysis",
			"id", a.ID,
			"url", a.URL,
			"items", len(a.Items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateAnalysis(ctx, a)
}

func (s *LoggingAnalysisService) FindAnalysisByID(ctx context.Context, id string) (a *schemascan.Analysis, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find analysis",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAnalysisByID(ctx, id)
}

func (s *LoggingAnalysisService) FindAnalyses(ctx context.Context, filter schemascan.AnalysisFilter) (analyses []*schemascan.Analysis, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find analyses",
			"count", len(analyses),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAnalyses(ctx, filter)
}

func (s *LoggingAnalysisService) DeleteAnalysis(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete analysis",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteAnalysis(ctx, id)
}
