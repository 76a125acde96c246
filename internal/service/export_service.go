package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/event-board/pkg/export"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"ID", "Title", "Starting", "Ending", "Location", "Categories"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered export ready to be sent as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the visible event list as CSV or PDF.
type ExportService struct {
	csv       csvRenderer
	pdf       pdfRenderer
	formatter *DisplayFormatter
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the pkg/export defaults.
func NewExportService(formatter *DisplayFormatter, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, formatter: formatter, logger: logger, now: time.Now}
}

// Export renders the store's visible events in format.
func (s *ExportService) Export(store *EventStore, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	dataset := s.buildDataset(store)

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, "Events")
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		s.logger.Error("render export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("events_%s.%s", s.now().UTC().Format("20060102_150405"), format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func (s *ExportService) buildDataset(store *EventStore) export.Dataset {
	cards := store.Cards()
	rows := make([]map[string]string, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, map[string]string{
			"ID":         card.ID.String(),
			"Title":      card.Title,
			"Starting":   s.formatter.Format(card.StartTime),
			"Ending":     s.formatter.Format(card.EndTime),
			"Location":   card.Location,
			"Categories": strings.Join(card.CategoryNames, ", "),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}
