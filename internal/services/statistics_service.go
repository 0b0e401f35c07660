package services

import (
	"context"
	"fmt"

	"sdtech_backend/internal/models"
	"sdtech_backend/internal/repositories"
)

type StatisticsService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type statisticsService struct {
	statsRepo repositories.StatisticsRepository
}

func NewStatisticsService(repo repositories.StatisticsRepository) StatisticsService {
	return &statisticsService{statsRepo: repo}
}

func (s *statisticsService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.statsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard statistics: %w", err)
	}
	return stats, nil
}
