
package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"content-quality-analyzer/internal/models"
)

// ReadRequests reads analysis requests from a CSV file (header with a "url"
// and/or "text" column) or an NDJSON file. Unknown extensions try CSV first,
// then NDJSON.
func ReadRequests(path string) ([]models.AnalyzeRequest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path)
	case ".ndjson", ".jsonl":
		return readNDJSONFile(path)
	default:
		if reqs, err := readCSVFile(path); err == nil && len(reqs) > 0 {
			return reqs, nil
		}
		return readNDJSONFile(path)
	}
}

func readCSVFile(path string) ([]models.AnalyzeRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func readNDJSONFile(path string) ([]models.AnalyzeRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadNDJSON(f)
}

func ReadCSV(r io.Reader) ([]models.AnalyzeRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}

	urlCol, textCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "url":
			urlCol = i
		case "text":
			textCol = i
		}
	}
	if urlCol == -1 && textCol == -1 {
		return nil, errors.New("csv must contain a 'url' or 'text' header column")
	}

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}
	var out []models.AnalyzeRequest
	for _, row := range rows[1:] {
		req := models.AnalyzeRequest{URL: cell(row, urlCol), Text: cell(row, textCol)}
		if req.URL == "" && req.Text == "" {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// ReadNDJSON accepts {"url": ..., "text": ...} objects or bare URL lines.
func ReadNDJSON(r io.Reader) ([]models.AnalyzeRequest, error) {
	var out []models.AnalyzeRequest
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "{") {
			var req models.AnalyzeRequest
			if err := json.Unmarshal([]byte(s), &req); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if req.URL == "" && req.Text == "" {
				return nil, fmt.Errorf("line %d: object needs a url or text field", line)
			}
			out = append(out, req)
			continue
		}
		out = append(out, models.AnalyzeRequest{URL: s})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no requests found in ndjson")
	}
	return out, nil
}

// WriteNDJSON writes any JSON-marshalable items as NDJSON to w.
func WriteNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
