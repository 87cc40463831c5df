package dto

// StudentMetrics is the per-student row of a class metrics report.
type StudentMetrics struct {
	StudentID        string  `json:"studentId"`
	StudentName      string  `json:"studentName"`
	AvgScorePct      float64 `json:"avgScorePct"`
	SessionsThisWeek int     `json:"sessionsThisWeek"`
	AvgAccuracyPct   float64 `json:"avgAccuracyPct"`
	RecentMood       *int    `json:"recentMood"`
}

// ClassMetricsSummary aggregates the student rows of a class.
type ClassMetricsSummary struct {
	AvgAccuracy     float64 `json:"avgAccuracy"`
	ActiveStudents  int     `json:"activeStudents"`
	LowMoodStudents int     `json:"lowMoodStudents"`
	DueAssignments  int     `json:"dueAssignments"`
}

// ClassMetrics is the response body of GET /classes/:id/metrics.
type ClassMetrics struct {
	Metrics []StudentMetrics    `json:"metrics"`
	Summary ClassMetricsSummary `json:"summary"`
}
