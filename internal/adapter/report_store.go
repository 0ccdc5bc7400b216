package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

const (
	reportsFileName      = "reports.yaml"
	reportsFormatVersion = 1
)

// ReportStore persists reports of a run.
type ReportStore interface {
	SaveReports(ctx context.Context, path m.Path, reports []m.Report) error
	LoadReports(ctx context.Context, path m.Path) ([]m.Report, error)
}

type reportsDocument struct {
	Version   int        `yaml:"version"`
	Generated time.Time  `yaml:"generated"`
	Reports   []m.Report `yaml:"reports"`
}

type yamlReportStore struct{}

// NewReportStore returns a ReportStore that writes one YAML document per
// reports directory.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

func (s *yamlReportStore) SaveReports(ctx context.Context, path m.Path, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(path), 0o750); err != nil {
		slog.Error("Failed to create reports dir", "path", path, "error", err)
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(reportsDocument{
		Version:   reportsFormatVersion,
		Generated: time.Now().UTC(),
		Reports:   reports,
	})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	target := filepath.Join(string(path), reportsFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		slog.Error("Failed to write reports", "path", target, "error", err)
		return fmt.Errorf("write reports: %w", err)
	}

	slog.Info("Saved reports", "path", target, "count", len(reports))

	return nil
}

func (s *yamlReportStore) LoadReports(ctx context.Context, path m.Path) ([]m.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := filepath.Join(string(path), reportsFileName)

	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no reports found in %s: %w", path, err)
		}

		return nil, fmt.Errorf("read reports: %w", err)
	}

	var doc reportsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	if doc.Version != reportsFormatVersion {
		return nil, fmt.Errorf("unsupported reports version %d", doc.Version)
	}

	return doc.Reports, nil
}
