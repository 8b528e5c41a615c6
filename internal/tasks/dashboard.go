package tasks

import (
	"time"

	"agency-tracker-api/internal/models"

	"gorm.io/gorm"
)

// PaymentSummary totals the outstanding balance across unpaid tasks.
type PaymentSummary struct {
	TotalUnpaid       float64 `json:"totalUnpaid"`
	PendingTasksCount int64   `json:"pendingTasksCount"`
}

// Dashboard is the role-scoped landing page summary. PaymentSummary is only
// filled for admins.
type Dashboard struct {
	OverdueTasks      []models.Task               `json:"overdueTasks"`
	CompletedThisWeek int64                       `json:"completedThisWeek"`
	PaymentSummary    *PaymentSummary             `json:"paymentSummary"`
	StatusBreakdown   map[models.TaskStatus]int64 `json:"statusBreakdown"`
}

// BuildDashboard assembles the dashboard as of the given instant.
func BuildDashboard(db *gorm.DB, caller Caller, now time.Time) (*Dashboard, error) {
	d := &Dashboard{OverdueTasks: []models.Task{}}

	// Overdue: past due date and not DONE, soonest first, capped at 10.
	err := scoped(db, caller, Filter{}).
		Where("due_date < ? AND status <> ?", now, models.StatusDone).
		Order("due_date asc").
		Limit(10).
		Find(&d.OverdueTasks).Error
	if err != nil {
		return nil, err
	}
	if err := Populate(db, d.OverdueTasks); err != nil {
		return nil, err
	}

	weekStart, weekEnd := weekBounds(now)
	err = scoped(db, caller, Filter{}).
		Where("completed_at >= ? AND completed_at <= ?", weekStart, weekEnd).
		Count(&d.CompletedThisWeek).Error
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin() {
		var ps PaymentSummary
		err = db.Model(&models.Task{}).
			Select("COALESCE(SUM(price - paid_amount), 0) AS total_unpaid, COUNT(*) AS pending_tasks_count").
			Where("payment_status IN ?", []models.PaymentStatus{models.PaymentPending, models.PaymentPartial}).
			Scan(&ps).Error
		if err != nil {
			return nil, err
		}
		d.PaymentSummary = &ps
	}

	breakdown, err := statusBreakdown(db, caller)
	if err != nil {
		return nil, err
	}
	d.StatusBreakdown = breakdown

	return d, nil
}

// statusBreakdown counts the caller's visible tasks per kanban status,
// with every status present even when zero.
func statusBreakdown(db *gorm.DB, caller Caller) (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Count  int64
	}

	var rows []row
	err := scoped(db, caller, Filter{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.TaskStatus]int64{
		models.StatusBacklog:    0,
		models.StatusInProgress: 0,
		models.StatusReview:     0,
		models.StatusDone:       0,
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// weekBounds returns the ISO week (Monday 00:00:00 through the last instant
// of Sunday) containing t, in t's location.
func weekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := midnight.AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}
