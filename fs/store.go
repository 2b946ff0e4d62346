// Package fs stores analysis results as JSON files.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.ResultStore = (*ResultStore)(nil)

// ResultStore writes one JSON file per result into a directory.
type ResultStore struct {
	dir string
}

// NewResultStore creates a ResultStore writing to dir. The directory is
// created on the first write.
func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: dir}
}

// MaxHostLength caps the host part of a file name so that names, suffix
// included, stay well under the 255-byte limit of common filesystems.
const MaxHostLength = 200

// maxAttempts bounds the numeric suffixes tried for one result.
const maxAttempts = 10000

// FileName returns the file name for a result:
// <host>_<timestamp>.json with every non-alphanumeric host character and
// every ':' or '.' of the timestamp replaced. Hosts longer than
// MaxHostLength are cut.
func FileName(result *schemascan.Result) string {
	host := "unknown"
	if u, err := url.Parse(result.Metadata.URL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}

	host = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, host)
	if len(host) > MaxHostLength {
		host = host[:MaxHostLength]
	}

	ts := result.Metadata.AnalyzedAt.UTC().Format(schemascan.TimestampFormat)
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)

	return host + "_" + ts + ".json"
}

// WriteResult writes result as indented JSON and returns the file path.
// The file appears atomically. An existing file of the same name is never
// overwritten; a numeric suffix is added instead.
func (s *ResultStore) WriteResult(ctx context.Context, result *schemascan.Result) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if result == nil {
		return "", schemascan.Errorf(schemascan.EINVALID, "result required")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".result-*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	return s.claim(tmpName, FileName(result))
}

// claim hard-links the written temp file to the first free name derived
// from name. os.Link fails when the target exists, so concurrent writers
// never replace each other's files.
func (s *ResultStore) claim(tmpName, name string) (string, error) {
	base := strings.TrimSuffix(name, ".json")
	path := filepath.Join(s.dir, name)
	for i := 1; i <= maxAttempts; i++ {
		err := os.Link(tmpName, path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("saving %s: %w", path, err)
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%d.json", base, i))
	}
	return "", schemascan.Errorf(schemascan.EINTERNAL, "no free file name for %s", name)
}

// ReadResult loads a result envelope from path. Relative paths are read
// as given, not relative to the store directory.
func (s *ResultStore) ReadResult(ctx context.Context, path string) (*schemascan.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, schemascan.Errorf(schemascan.ENOTFOUND, "result file not found: %s", path)
	} else if err != nil {
		return nil, err
	}

	return schemascan.DecodeResult(bytes.NewReader(data))
}
