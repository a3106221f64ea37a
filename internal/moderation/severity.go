// Package moderation holds the pure decision rules behind the admin
// moderation flows: report severity tiers, warn/ban thresholds, and
// time-derived entity statuses. Nothing in here touches the database; the
// thresholds are always passed in explicitly.
package moderation

import "github.com/campusgo/admin-backend/internal/model"

type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityUrgent  Severity = "urgent"
)

// SeverityOf returns the highest severity tier whose threshold the report
// count meets or exceeds. Counts below every threshold are "normal".
func SeverityOf(reportCount int, t model.ReportThresholds) Severity {
	switch {
	case reportCount >= t.Urgent:
		return SeverityUrgent
	case reportCount >= t.Warning:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// IsUrgent reports whether a report count puts an entity in the urgent tier.
func IsUrgent(reportCount int, t model.ReportThresholds) bool {
	return reportCount >= t.Urgent
}
