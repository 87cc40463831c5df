package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentormind-api/internal/dto"
	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
)

const (
	// MetricsWindow bounds both the trailing practice window and the upcoming due window.
	MetricsWindow = 7 * 24 * time.Hour

	activeSessionThreshold = 2
	lowMoodThreshold       = 2
)

type classMetricsRepository interface {
	classOwnershipFinder
	CountDueAssignments(ctx context.Context, classID string, from, to time.Time) (int, error)
}

type studentActivityRepository interface {
	ListActivity(ctx context.Context, classID string, since, until time.Time) ([]models.StudentActivity, error)
}

// ClassMetricsService computes engagement metrics for a class.
type ClassMetricsService struct {
	classes  classMetricsRepository
	students studentActivityRepository
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewClassMetricsService constructs a ClassMetricsService.
func NewClassMetricsService(classes classMetricsRepository, students studentActivityRepository, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *ClassMetricsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassMetricsService{
		classes:  classes,
		students: students,
		cache:    cache,
		metrics:  metrics,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Get verifies that teacherID owns the class and returns its metrics. The
// boolean reports whether the payload was served from cache.
func (s *ClassMetricsService) Get(ctx context.Context, classID, teacherID string) (*dto.ClassMetrics, bool, error) {
	if _, err := ensureOwnedClass(ctx, s.classes, classID, teacherID); err != nil {
		return nil, false, err
	}

	now := s.now()
	key := classMetricsKey(classID, now)

	var cached dto.ClassMetrics
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	result, err := s.Compute(ctx, classID, now)
	if err != nil {
		return nil, false, err
	}

	_ = s.cache.Set(ctx, key, result, s.cacheTTL)
	return result, false, nil
}

// Compute loads the class activity as of now and aggregates it. Ownership is
// the caller's responsibility.
func (s *ClassMetricsService) Compute(ctx context.Context, classID string, now time.Time) (*dto.ClassMetrics, error) {
	start := time.Now()
	activity, err := s.students.ListActivity(ctx, classID, now.Add(-MetricsWindow), now)
	s.metrics.ObserveDBQuery("class_activity", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load class activity")
	}

	start = time.Now()
	due, err := s.classes.CountDueAssignments(ctx, classID, now, now.Add(MetricsWindow))
	s.metrics.ObserveDBQuery("due_assignments", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count due assignments")
	}

	result := AggregateClassMetrics(activity, due)
	s.logger.Debug("class metrics computed",
		zap.String("class_id", classID),
		zap.Int("students", len(result.Metrics)),
		zap.Int("due_assignments", due),
	)
	return &result, nil
}

// AggregateClassMetrics reduces per-student activity to the metrics report.
// Activity must already be restricted to the trailing window.
func AggregateClassMetrics(activity []models.StudentActivity, dueAssignments int) dto.ClassMetrics {
	rows := make([]dto.StudentMetrics, 0, len(activity))
	accuracies := make([]float64, 0, len(activity))
	summary := dto.ClassMetricsSummary{DueAssignments: dueAssignments}

	for _, a := range activity {
		row := dto.StudentMetrics{
			StudentID:        a.Student.ID,
			StudentName:      a.Student.Name,
			AvgScorePct:      roundHalfUp(mean(a.SubmissionScores)),
			SessionsThisWeek: len(a.SessionAccuracies),
			AvgAccuracyPct:   roundHalfUp(mean(a.SessionAccuracies)),
		}
		if a.RecentMood != nil {
			mood := *a.RecentMood
			row.RecentMood = &mood
			if mood <= lowMoodThreshold {
				summary.LowMoodStudents++
			}
		}
		if row.SessionsThisWeek >= activeSessionThreshold {
			summary.ActiveStudents++
		}
		accuracies = append(accuracies, row.AvgAccuracyPct)
		rows = append(rows, row)
	}

	summary.AvgAccuracy = roundHalfUp(mean(accuracies))
	return dto.ClassMetrics{Metrics: rows, Summary: summary}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// roundHalfUp rounds to two decimals with halves going up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
