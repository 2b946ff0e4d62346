package mock

import (
	"context"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.AnalysisService = (*AnalysisService)(nil)

// AnalysisService is a mock implementation of schemascan.AnalysisService.
type AnalysisService struct {
	CreateAnalysisFn   func(ctx context.Context, a *schemascan.Analysis) error
	FindAnalysisByIDFn func(ctx context.Context, id string) (*schemascan.Analysis, error)
	FindAnalysesFn     func(ctx context.Context, filter schemascan.AnalysisFilter) ([]*schemascan.Analysis, error)
	DeleteAnalysisFn   func(ctx context.Context, id string) error
}

func (s *AnalysisService) CreateAnalysis(ctx context.Context, a *schemascan.Analysis) error {
	return s.CreateAnalysisFn(ctx, a)
}

func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*schemascan.Analysis, error) {
	return s.FindAnalysisByIDFn(ctx, id)
}

func (s *AnalysisService) FindAnalyses(ctx context.Context, filter schemascan.AnalysisFilter) ([]*schemascan.Analysis, error) {
	return s.FindAnalysesFn(ctx, filter)
}

func (s *AnalysisService) DeleteAnalysis(ctx context.Context, id string) error {
	return s.DeleteAnalysisFn(ctx, id)
}
