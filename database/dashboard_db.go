package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	Branches        int64 `json:"branches"`
	Doctors         int64 `json:"doctors"`
	Patients        int64 `json:"patients"`
	PatientHistory  int64 `json:"patient_history"`
	News            int64 `json:"news"`
	Galleries       int64 `json:"galleries"`
	Receptions      int64 `json:"receptions"`
	PendingFeedback int64 `json:"pending_feedback"`
}

func countAll(db *sql.DB, table string) (int64, error) {
	sqlStr, args, err := builder.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count SQL for %s: %w", table, err)
	}
	var n int64
	if err := db.QueryRow(sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// GetDashboardStats collects row counts for the admin dashboard.
func GetDashboardStats(db *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}

	targets := []struct {
		table string
		dst   *int64
	}{
		{"branches", &stats.Branches},
		{"doctors", &stats.Doctors},
		{"patients", &stats.Patients},
		{"patient_history", &stats.PatientHistory},
		{"news", &stats.News},
		{"galleries", &stats.Galleries},
		{"receptions", &stats.Receptions},
	}
	for _, t := range targets {
		n, err := countAll(db, t.table)
		if err != nil {
			return nil, err
		}
		*t.dst = n
	}

	sqlStr, args, err := builder.Select("count(*)").
		From("feedbacks").
		Where(sq.Eq{"is_approved": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending feedback SQL: %w", err)
	}
	if err := db.QueryRow(sqlStr, args...).Scan(&stats.PendingFeedback); err != nil {
		return nil, fmt.Errorf("failed to count pending feedback: %w", err)
	}

	return stats, nil
}
