package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/schemascan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ schemascan.AnalysisService = (*AnalysisService)(nil)

// AnalysisService implements schemascan.AnalysisService using SQLite.
type AnalysisService struct {
	db *DB
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(db *DB) *AnalysisService {
	return &AnalysisService{db: db}
}

const analysisColumns = `id, url, analyzed_at, state, generated, tier, items, valid_count, skipped, output_path, content_hash`

// CreateAnalysis records an analysis, assigning its ID and content hash.
func (s *AnalysisService) CreateAnalysis(ctx context.Context, a *schemascan.Analysis) error {
	if err := a.Validate(); err != nil {
		return err
	}

	items := a.Items
	if items == nil {
		items = []schemascan.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	a.ID = uuid.New().String()
	a.ContentHash = hashContent(string(data))

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, url, analyzed_at, state, generated, tier, items, item_count, valid_count, skipped, output_path, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.URL, formatTime(a.AnalyzedAt), string(a.State), a.Generated, string(a.Tier),
		string(data), len(items), a.ValidCount, a.Skipped, a.OutputPath, a.ContentHash)

	return err
}

// FindAnalysisByID retrieves an analysis by ID.
func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*schemascan.Analysis, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schemascan.Errorf(schemascan.ENOTFOUND, "analysis not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindAnalyses retrieves analyses matching the filter, newest first.
func (s *AnalysisService) FindAnalyses(ctx context.Context, filter schemascan.AnalysisFilter) ([]*schemascan.Analysis, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + analysisColumns + " FROM analyses WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY analyzed_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []*schemascan.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// DeleteAnalysis permanently removes an analysis.
func (s *AnalysisService) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return schemascan.Errorf(schemascan.ENOTFOUND, "analysis not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*schemascan.Analysis, error) {
	var a schemascan.Analysis
	var analyzedAt, state, tier, items string

	if err := row.Scan(&a.ID, &a.URL, &analyzedAt, &state, &a.Generated, &tier, &items,
		&a.ValidCount, &a.Skipped, &a.OutputPath, &a.ContentHash); err != nil {
		return nil, err
	}

	var err error
	a.AnalyzedAt, err = parseTime(analyzedAt, "analyzed_at")
	if err != nil {
		return nil, err
	}
	a.State = schemascan.ExtractionState(state)
	a.Tier = schemascan.GenerationTier(tier)

	if err := json.Unmarshal([]byte(items), &a.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	if a.Items == nil {
		a.Items = []schemascan.Item{}
	}

	return &a, nil
}
