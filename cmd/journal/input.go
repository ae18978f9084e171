package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/blaisecz/health-journal/internal/domain"
	"gopkg.in/yaml.v3"
)

// journalFile is the document accepted by --records. A bare list of records
// is also accepted.
type journalFile struct {
	Profile *domain.CycleProfile `json:"profile"`
	Records []domain.DailyRecord `json:"records"`
}

// readDocument parses YAML or JSON (a YAML subset) and re-encodes it as JSON
// so the domain json tags apply to both formats.
func readDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parse %s: empty document", path)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return data, nil
}

func loadJournal(path string) (*journalFile, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var file journalFile
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &file.Records); err != nil {
			return nil, fmt.Errorf("decode records in %s: %w", path, err)
		}
		return &file, nil
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode records in %s: %w", path, err)
	}
	return &file, nil
}

func loadProfile(path string) (*domain.CycleProfile, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	var profile domain.CycleProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile in %s: %w", path, err)
	}
	return &profile, nil
}
