package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"staffhub/internal/cache"
	"staffhub/internal/repository"
)

const (
	dashboardStatsCacheKey = "dashboard:stats"
	dashboardStatsCacheTTL = 30 * time.Second
	newEmployeeWindow      = 30 * 24 * time.Hour
)

// DashboardStats aggregates the numbers the dashboard shows.
type DashboardStats struct {
	TotalEmployees   int64   `json:"totalEmployees"`
	NewEmployees     int64   `json:"newEmployees"`
	AttendanceRate   float64 `json:"attendanceRate"`
	DepartmentsCount int64   `json:"departmentsCount"`
}

// DashboardService computes read-only aggregations over employees.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	employees repository.EmployeeRepository
	cache     *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(employees repository.EmployeeRepository, cache *cache.Client) DashboardService {
	return &dashboardService{employees: employees, cache: cache}
}

// Stats returns total employees, employees created in the trailing 30 days,
// average attendance rounded to two decimals (0 when empty), and the number
// of distinct departments. Results are cached briefly; employee writes
// invalidate the cache.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardStatsCacheKey); data != nil {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	total, err := s.employees.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	recent, err := s.employees.CountCreatedSince(ctx, time.Now().Add(-newEmployeeWindow))
	if err != nil {
		return nil, fmt.Errorf("count new employees: %w", err)
	}

	avg, err := s.employees.AverageAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("average attendance: %w", err)
	}

	departments, err := s.employees.CountDistinctDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}

	stats := &DashboardStats{
		TotalEmployees:   total,
		NewEmployees:     recent,
		AttendanceRate:   math.Round(avg*100) / 100,
		DepartmentsCount: departments,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardStatsCacheKey, payload, dashboardStatsCacheTTL)
	}
	return stats, nil
}
