package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/internal/dto"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
	"github.com/noah-isme/mentormind-api/pkg/export"
	"github.com/noah-isme/mentormind-api/pkg/validation"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type tableRenderer interface {
	ContentType() string
	Extension() string
	Render(table export.Table) ([]byte, error)
}

type classMetricsSource interface {
	Get(ctx context.Context, classID, teacherID string) (*dto.ClassMetrics, bool, error)
}

// ExportResult is a rendered metrics document ready to be sent.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders class metrics as downloadable documents.
type ExportService struct {
	metrics   classMetricsSource
	renderers map[string]tableRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(metrics classMetricsSource, logger *zap.Logger, csv, pdf tableRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		metrics:   metrics,
		renderers: map[string]tableRenderer{ExportFormatCSV: csv, ExportFormatPDF: pdf},
		logger:    logger,
		now:       time.Now,
	}
}

// ExportClassMetrics renders the metrics of an owned class in the requested format.
func (s *ExportService) ExportClassMetrics(ctx context.Context, classID, teacherID, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, fmt.Errorf("unsupported format %q", format), []validation.FieldError{
			{Field: "format", Message: "format must be one of [csv pdf]"},
		})
	}

	metrics, _, err := s.metrics.Get(ctx, classID, teacherID)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	payload, err := renderer.Render(buildMetricsTable(classID, generatedAt, metrics))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render metrics export")
	}
	s.logger.Info("class metrics exported", zap.String("class_id", classID), zap.String("format", format), zap.Int("bytes", len(payload)))

	return &ExportResult{
		Filename:    fmt.Sprintf("class_%s_metrics_%s.%s", sanitizeFilename(classID), generatedAt.Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        payload,
	}, nil
}

func buildMetricsTable(classID string, generatedAt time.Time, metrics *dto.ClassMetrics) export.Table {
	table := export.Table{
		Title:   fmt.Sprintf("Class %s metrics (%s)", classID, generatedAt.Format(time.RFC3339)),
		Headers: []string{"Student ID", "Student", "Avg Score %", "Sessions This Week", "Avg Accuracy %", "Recent Mood"},
	}
	for _, m := range metrics.Metrics {
		mood := ""
		if m.RecentMood != nil {
			mood = strconv.Itoa(*m.RecentMood)
		}
		table.Rows = append(table.Rows, []string{
			m.StudentID,
			m.StudentName,
			formatPct(m.AvgScorePct),
			strconv.Itoa(m.SessionsThisWeek),
			formatPct(m.AvgAccuracyPct),
			mood,
		})
	}
	sum := metrics.Summary
	table.Summary = []export.SummaryItem{
		{Label: "Avg Accuracy %", Value: formatPct(sum.AvgAccuracy)},
		{Label: "Active Students", Value: strconv.Itoa(sum.ActiveStudents)},
		{Label: "Low Mood Students", Value: strconv.Itoa(sum.LowMoodStudents)},
		{Label: "Due Assignments", Value: strconv.Itoa(sum.DueAssignments)},
	}
	return table
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
