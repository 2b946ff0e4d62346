package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateAnalysis simulates recording a batch run against a
// file-based database.
func BenchmarkCreateAnalysis(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewAnalysisService(db)
	ctx := context.Background()
	at := time.Now()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		a := &schemascan.Analysis{
			URL:        fmt.Sprintf("https://example.com/page%d", i),
			AnalyzedAt: at.Add(time.Duration(i) * time.Millisecond),
			State:      schemascan.ExtractionExtracted,
			Items: []schemascan.Item{{
				Type:   "Article",
				Data:   map[string]any{"@context": "https://schema.org", "@type": "Article", "headline": fmt.Sprintf("Page %d", i)},
				Format: schemascan.FormatJSONLD,
				Source: schemascan.SourceScript,
			}},
			ValidCount: 1,
		}
		if err := svc.CreateAnalysis(ctx, a); err != nil {
			b.Fatal(err)
		}
	}
}
