package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"
	"sdtech_backend/pkg/utils"
)

var ErrReportNotFound = errors.New("report not found")

const (
	reportStatusCompleted = "Completado"
	defaultReportPeriod   = "Actual"
)

type CreateReportRequest struct {
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Period      string `json:"period"`
}

type reportBuilder interface {
	Build(ctx context.Context, base models.Report) (*models.Report, error)
}

type ReportService interface {
	GetReports(ctx context.Context) ([]models.Report, error)
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	CreateReport(ctx context.Context, req CreateReportRequest) (*models.Report, error)
	DeleteReport(ctx context.Context, id string) (*models.Report, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	builder    reportBuilder
	now        func() time.Time
}

func NewReportService(repo repositories.ReportRepository, builder reportBuilder) ReportService {
	return &reportService{reportRepo: repo, builder: builder, now: time.Now}
}

// reportDate renders d/m/yyyy without zero padding.
func reportDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

func (s *reportService) GetReports(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reportRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	return reports, nil
}

func (s *reportService) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report by ID: %w", err)
	}
	return report, nil
}

// CreateReport computes the snapshot for the requested type and stores it.
func (s *reportService) CreateReport(ctx context.Context, req CreateReportRequest) (*models.Report, error) {
	if utils.IsEmpty(req.Title) || utils.IsEmpty(req.Type) {
		return nil, fmt.Errorf("%w: title and type are required", ErrValidation)
	}
	period := strings.TrimSpace(req.Period)
	if period == "" {
		period = defaultReportPeriod
	}

	base := models.Report{
		Title:       strings.TrimSpace(req.Title),
		Type:        strings.TrimSpace(req.Type),
		ReportDate:  reportDate(s.now()),
		Status:      reportStatusCompleted,
		Description: req.Description,
		Period:      period,
	}
	snapshot, err := s.builder.Build(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	created, err := s.reportRepo.Create(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to create report in repository: %w", err)
	}
	return created, nil
}

func (s *reportService) DeleteReport(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.reportRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to delete report: %w", err)
	}
	return report, nil
}
