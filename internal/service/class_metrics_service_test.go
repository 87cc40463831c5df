package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
)

var metricsNow = time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)

func ownedClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: map[string]*models.Class{
		"class-1": {ID: "class-1", Name: "Algebra I - Period 1", TeacherID: "teacher-1"},
		"class-2": {ID: "class-2", Name: "Biology - Period 2", TeacherID: "teacher-2"},
	}}
}

func twoStudentActivity() []models.StudentActivity {
	return []models.StudentActivity{
		{
			Student:           models.Student{ID: "student-a", Name: "Student A"},
			SubmissionScores:  []float64{85.5, 92.0},
			SessionAccuracies: []float64{70, 80, 90},
		},
		{
			Student:           models.Student{ID: "student-b", Name: "Student B"},
			SessionAccuracies: []float64{50},
			RecentMood:        intPtr(1),
		},
	}
}

func TestAggregateClassMetricsTwoStudentScenario(t *testing.T) {
	result := AggregateClassMetrics(twoStudentActivity(), 2)

	require.Len(t, result.Metrics, 2)
	a, b := result.Metrics[0], result.Metrics[1]

	assert.Equal(t, "student-a", a.StudentID)
	assert.Equal(t, 88.75, a.AvgScorePct)
	assert.Equal(t, 3, a.SessionsThisWeek)
	assert.Equal(t, 80.0, a.AvgAccuracyPct)
	assert.Nil(t, a.RecentMood)

	assert.Equal(t, "student-b", b.StudentID)
	assert.Equal(t, 0.0, b.AvgScorePct)
	assert.Equal(t, 1, b.SessionsThisWeek)
	assert.Equal(t, 50.0, b.AvgAccuracyPct)
	require.NotNil(t, b.RecentMood)
	assert.Equal(t, 1, *b.RecentMood)

	assert.Equal(t, 1, result.Summary.ActiveStudents)
	assert.Equal(t, 1, result.Summary.LowMoodStudents)
	assert.Equal(t, 65.0, result.Summary.AvgAccuracy)
	assert.Equal(t, 2, result.Summary.DueAssignments)
}

func TestAggregateClassMetricsZeroCases(t *testing.T) {
	result := AggregateClassMetrics([]models.StudentActivity{
		{Student: models.Student{ID: "s1", Name: "Quiet Student"}},
	}, 0)

	require.Len(t, result.Metrics, 1)
	row := result.Metrics[0]
	assert.Equal(t, 0.0, row.AvgScorePct)
	assert.Equal(t, 0, row.SessionsThisWeek)
	assert.Equal(t, 0.0, row.AvgAccuracyPct)
	assert.Nil(t, row.RecentMood)
	assert.Equal(t, 0, result.Summary.ActiveStudents)
	assert.Equal(t, 0, result.Summary.LowMoodStudents)

	raw, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"recentMood":null`)
}

func TestAggregateClassMetricsEmptyClass(t *testing.T) {
	result := AggregateClassMetrics(nil, 0)

	assert.NotNil(t, result.Metrics)
	assert.Empty(t, result.Metrics)
	assert.Equal(t, 0.0, result.Summary.AvgAccuracy)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metrics":[],"summary":{"avgAccuracy":0,"activeStudents":0,"lowMoodStudents":0,"dueAssignments":0}}`, string(raw))
}

func TestAggregateClassMetricsThresholds(t *testing.T) {
	activity := []models.StudentActivity{
		{Student: models.Student{ID: "s1"}, SessionAccuracies: []float64{60, 70}, RecentMood: intPtr(2)},
		{Student: models.Student{ID: "s2"}, SessionAccuracies: []float64{60}, RecentMood: intPtr(3)},
		{Student: models.Student{ID: "s3"}, RecentMood: intPtr(5)},
	}
	result := AggregateClassMetrics(activity, 0)

	assert.Equal(t, 1, result.Summary.ActiveStudents)
	assert.Equal(t, 1, result.Summary.LowMoodStudents)
}

func TestAggregateClassMetricsRoundsHalfUp(t *testing.T) {
	activity := []models.StudentActivity{
		{Student: models.Student{ID: "s1"}, SubmissionScores: []float64{90, 80, 80}, SessionAccuracies: []float64{33.335}},
		{Student: models.Student{ID: "s2"}, SessionAccuracies: []float64{66.67}},
	}
	result := AggregateClassMetrics(activity, 0)

	assert.Equal(t, 83.33, result.Metrics[0].AvgScorePct)
	assert.Equal(t, 66.67, result.Metrics[1].AvgAccuracyPct)
	assert.InDelta(t, 50.0, result.Summary.AvgAccuracy, 0.011)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 88.75, roundHalfUp(88.75))
	assert.Equal(t, 0.13, roundHalfUp(0.125))
	assert.Equal(t, 83.33, roundHalfUp(250.0/3))
	assert.Equal(t, 0.0, roundHalfUp(0))
}

func TestRoundHalfUpWorksOnBinaryValues(t *testing.T) {
	assert.Equal(t, 1.0, roundHalfUp(1.005))
	assert.Equal(t, 33.34, roundHalfUp(33.335))
}

func TestClassMetricsServiceGetUsesWindows(t *testing.T) {
	classes := ownedClassRepo()
	classes.dueCount = 3
	students := &fakeStudentRepo{activity: twoStudentActivity()}
	svc := NewClassMetricsService(classes, students, nil, nil, 0, nil)
	svc.now = func() time.Time { return metricsNow }

	result, cached, err := svc.Get(context.Background(), "class-1", "teacher-1")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 3, result.Summary.DueAssignments)

	assert.Equal(t, metricsNow.Add(-7*24*time.Hour), students.sinceUntil[0])
	assert.Equal(t, metricsNow, students.sinceUntil[1])
	assert.Equal(t, metricsNow, classes.dueFrom)
	assert.Equal(t, metricsNow.Add(7*24*time.Hour), classes.dueTo)
}

func TestClassMetricsServiceIdempotent(t *testing.T) {
	classes := ownedClassRepo()
	students := &fakeStudentRepo{activity: twoStudentActivity()}
	svc := NewClassMetricsService(classes, students, nil, nil, 0, nil)

	first, err := svc.Compute(context.Background(), "class-1", metricsNow)
	require.NoError(t, err)
	second, err := svc.Compute(context.Background(), "class-1", metricsNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassMetricsServiceNotOwned(t *testing.T) {
	classes := ownedClassRepo()
	students := &fakeStudentRepo{}
	svc := NewClassMetricsService(classes, students, nil, nil, 0, nil)

	_, _, err := svc.Get(context.Background(), "class-2", "teacher-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrClassNotFound))
	assert.Equal(t, 0, students.calls)

	_, _, err = svc.Get(context.Background(), "missing", "teacher-1")
	assert.True(t, errors.Is(err, appErrors.ErrClassNotFound))
}

func TestClassMetricsServicePropagatesPersistenceErrors(t *testing.T) {
	classes := ownedClassRepo()
	students := &fakeStudentRepo{err: errors.New("db down")}
	svc := NewClassMetricsService(classes, students, nil, nil, 0, nil)

	_, _, err := svc.Get(context.Background(), "class-1", "teacher-1")
	require.Error(t, err)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}

func TestClassMetricsServiceCachesPerMinute(t *testing.T) {
	classes := ownedClassRepo()
	students := &fakeStudentRepo{activity: twoStudentActivity()}
	store := newMemoryCache()
	metrics := NewMetricsService()
	cache := NewCacheService(store, metrics, time.Minute, nil, true)
	svc := NewClassMetricsService(classes, students, cache, metrics, time.Minute, nil)
	svc.now = func() time.Time { return metricsNow }

	first, cached, err := svc.Get(context.Background(), "class-1", "teacher-1")
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := svc.Get(context.Background(), "class-1", "teacher-1")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, students.calls)

	_, _, err = svc.Get(context.Background(), "class-2", "teacher-1")
	assert.True(t, errors.Is(err, appErrors.ErrClassNotFound))
}
