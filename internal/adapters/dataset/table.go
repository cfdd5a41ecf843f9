// Package dataset reads, builds, and serves the merged clinic dataset.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	apperrors "github.com/medigate/clinic-navigator/pkg/errors"
)

// Dataset column names. Headers are carried verbatim from the government
// source CSVs, so they are Japanese.
const (
	ColID          = "ID"
	ColCategory    = "機関区分"
	ColName        = "正式名称"
	ColAddress     = "住所"
	ColWebsite     = "案内用ホームページアドレス"
	ColLatitude    = "所在地座標（緯度）"
	ColLongitude   = "所在地座標（経度）"
	ColDepartments = "標ぼう科目_一覧"
	ColDeptName    = "診療科目名"

	startSuffix = "_外来受付開始時間"
	endSuffix   = "_外来受付終了時間"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a CSV table held as strings. The merged dataset keeps every
// master column, so rows stay positional with a header index.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable creates a table and builds its header index
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		t.index[h] = i
	}
}

// Column returns the index of a named column
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Value returns the trimmed cell value of a row for a named column; missing
// columns and short rows read as empty.
func (t *Table) Value(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadTable loads a CSV file. UTF-8 (with or without a byte-order marker) is
// tried first; files that are not valid UTF-8 fall back to Shift_JIS, the
// encoding the source CSVs are distributed in. Any further failure
// propagates.
func ReadTable(path string) (*Table, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset not found: %s", resolved))
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to read dataset %s", resolved), err)
	}

	text, err := decodeBytes(data)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("dataset %s is not decodable as UTF-8 or Shift_JIS: %v", resolved, err))
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("failed to parse dataset %s: %v", resolved, err))
	}
	if len(records) == 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("dataset %s has no header row", resolved))
	}

	return NewTable(records[0], records[1:]), nil
}

func decodeBytes(data []byte) (string, error) {
	trimmed := bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(trimmed) {
		return string(trimmed), nil
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// WriteTable persists a table as UTF-8 CSV, creating parent directories as
// needed.
func WriteTable(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to create output directory for %s", path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return apperrors.NewInternalError("failed to write dataset header", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return apperrors.NewInternalError("failed to write dataset rows", err)
	}
	w.Flush()
	return w.Error()
}
