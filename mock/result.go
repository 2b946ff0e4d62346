package mock

import (
	"context"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of schemascan.ResultStore.
type ResultStore struct {
	WriteResultFn func(ctx context.Context, result *schemascan.Result) (string, error)
	ReadResultFn  func(ctx context.Context, path string) (*schemascan.Result, error)
}

func (s *ResultStore) WriteResult(ctx context.Context, result *schemascan.Result) (string, error) {
	return s.WriteResultFn(ctx, result)
}

func (s *ResultStore) ReadResult(ctx context.Context, path string) (*schemascan.Result, error) {
	return s.ReadResultFn(ctx, path)
}
