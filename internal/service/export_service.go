package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/models"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
	"github.com/nomadly/itinerary-api/pkg/export"
)

type itineraryReader interface {
	GetItinerary(ctx context.Context, userID, tripID string) (*dto.ItineraryResponse, error)
}

type tripReader interface {
	Get(ctx context.Context, userID, tripID string) (*models.Trip, error)
}

// ExportService renders a trip's schedule as a downloadable file.
type ExportService struct {
	itineraries itineraryReader
	trips       tripReader
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(itineraries itineraryReader, trips tripReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		itineraries: itineraries,
		trips:       trips,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

var exportHeaders = []string{"Day", "Date", "Start", "End", "Place", "Minutes", "Meal", "Notes"}

// ExportCSV renders the schedule as CSV.
func (s *ExportService) ExportCSV(ctx context.Context, userID, tripID string) ([]byte, string, error) {
	dataset, title, err := s.buildDataset(ctx, userID, tripID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, fmt.Sprintf("%s.csv", title), nil
}

// ExportPDF renders the schedule as a tabular PDF.
func (s *ExportService) ExportPDF(ctx context.Context, userID, tripID string) ([]byte, string, error) {
	dataset, title, err := s.buildDataset(ctx, userID, tripID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(dataset, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, fmt.Sprintf("%s.pdf", title), nil
}

func (s *ExportService) buildDataset(ctx context.Context, userID, tripID string) (export.Dataset, string, error) {
	trip, err := s.trips.Get(ctx, userID, tripID)
	if err != nil {
		return export.Dataset{}, "", err
	}
	itinerary, err := s.itineraries.GetItinerary(ctx, userID, tripID)
	if err != nil {
		return export.Dataset{}, "", err
	}

	dataset := export.Dataset{Headers: exportHeaders}
	for i, day := range itinerary.Days {
		for _, item := range day.Items {
			meal := "no"
			if item.IsMeal {
				meal = "yes"
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Day":     strconv.Itoa(i + 1),
				"Date":    day.DateLocal.Format("2006-01-02"),
				"Start":   item.StartTime,
				"End":     item.EndTime,
				"Place":   item.PoiName,
				"Minutes": strconv.Itoa(item.DurationMinutes),
				"Meal":    meal,
				"Notes":   item.Notes,
			})
		}
	}

	return dataset, trip.Title, nil
}
