package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kieranegan23/GPA-CALC/internal/models"
	appErrors "github.com/kieranegan23/GPA-CALC/pkg/errors"
	"github.com/kieranegan23/GPA-CALC/pkg/export"
)

// ReportFormat enumerates supported transcript formats.
type ReportFormat string

const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

type rosterReader interface {
	Roster() models.Roster
	GPA() string
	TotalCredits() int
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type archiver interface {
	Save(filename string, data []byte) (string, error)
}

// ExportResult carries a rendered transcript ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportConfig tunes transcript rendering.
type ExportConfig struct {
	Title string
}

// ExportService renders the roster into downloadable transcripts. When an
// archive is attached a copy of every rendered transcript is kept on disk.
type ExportService struct {
	roster  rosterReader
	csv     csvRenderer
	pdf     pdfRenderer
	archive archiver
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService. A nil archive disables
// transcript archiving.
func NewExportService(roster rosterReader, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, archive archiver) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "Class Transcript"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		roster:  roster,
		csv:     csv,
		pdf:     pdf,
		archive: archive,
		logger:  logger,
		cfg:     cfg,
	}
}

// Transcript renders the current roster in the requested format.
func (s *ExportService) Transcript(ctx context.Context, format ReportFormat) (*ExportResult, error) {
	dataset := s.buildDataset()

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case FormatPDF:
		payload, err = s.pdf.Render(dataset, s.cfg.Title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}

	result := &ExportResult{
		Filename:    fmt.Sprintf("transcript-%s.%s", time.Now().UTC().Format("20060102-150405"), format),
		ContentType: contentType,
		Payload:     payload,
	}
	if s.archive != nil {
		if _, err := s.archive.Save(result.Filename, payload); err != nil {
			// Archiving is best effort; the download still goes out.
			s.logger.Warn("transcript archive failed",
				zap.String("filename", result.Filename),
				zap.Error(err),
			)
		}
	}
	s.logger.Info("transcript rendered",
		zap.String("format", string(format)),
		zap.Int("bytes", len(payload)),
	)
	return result, nil
}

func (s *ExportService) buildDataset() export.Dataset {
	roster := s.roster.Roster()
	headers := []string{"Class", "Grade", "Credits", "Semester"}
	rows := make([]map[string]string, 0, len(roster))
	for _, e := range roster {
		rows = append(rows, map[string]string{
			"Class":    e.Name,
			"Grade":    string(e.Grade),
			"Credits":  strconv.Itoa(e.Credits),
			"Semester": e.Semester,
		})
	}
	return export.Dataset{
		Headers: headers,
		Rows:    rows,
		Summary: [][2]string{
			{"GPA", s.roster.GPA()},
			{"Total Credits", strconv.Itoa(s.roster.TotalCredits())},
		},
	}
}
