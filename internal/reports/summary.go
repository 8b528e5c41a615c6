package reports

import (
	"time"

	"agency-tracker-api/internal/models"

	"gorm.io/gorm"
)

// Breakdown is one payment-status group in the summary report.
type Breakdown struct {
	Status     models.PaymentStatus `json:"status"`
	Count      int64                `json:"count"`
	TotalPrice float64              `json:"totalPrice"`
	TotalPaid  float64              `json:"totalPaid"`
}

// TopAssignee ranks an employee by completed tasks inside the window.
type TopAssignee struct {
	AssigneeID     string  `json:"assigneeId"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	CompletedCount int64   `json:"completedCount"`
	TotalEarned    float64 `json:"totalEarned"`
}

// Summary is the admin payment/performance report over an optional
// createdAt window.
type Summary struct {
	CompletedCount   int64         `json:"completedCount"`
	TotalPaid        float64       `json:"totalPaid"`
	TotalUnpaid      float64       `json:"totalUnpaid"`
	PaymentBreakdown []Breakdown   `json:"paymentBreakdown"`
	TopAssignees     []TopAssignee `json:"topAssignees"`
}

// windowed applies the inclusive createdAt bounds when given.
func windowed(db *gorm.DB, from, to *time.Time) *gorm.DB {
	q := db.Model(&models.Task{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}
	return q
}

// BuildSummary computes the aggregated report. Read-only; totals are
// eventually consistent with concurrent task mutations.
func BuildSummary(db *gorm.DB, from, to *time.Time) (*Summary, error) {
	s := &Summary{
		PaymentBreakdown: []Breakdown{},
		TopAssignees:     []TopAssignee{},
	}

	err := windowed(db, from, to).
		Where("status = ?", models.StatusDone).
		Count(&s.CompletedCount).Error
	if err != nil {
		return nil, err
	}

	err = windowed(db, from, to).
		Select("COALESCE(SUM(paid_amount), 0)").
		Where("payment_status = ?", models.PaymentPaid).
		Scan(&s.TotalPaid).Error
	if err != nil {
		return nil, err
	}

	err = windowed(db, from, to).
		Select("COALESCE(SUM(price - paid_amount), 0)").
		Where("payment_status IN ?", []models.PaymentStatus{models.PaymentPending, models.PaymentPartial}).
		Scan(&s.TotalUnpaid).Error
	if err != nil {
		return nil, err
	}

	err = windowed(db, from, to).
		Select("payment_status AS status, COUNT(*) AS count, COALESCE(SUM(price), 0) AS total_price, COALESCE(SUM(paid_amount), 0) AS total_paid").
		Group("payment_status").
		Scan(&s.PaymentBreakdown).Error
	if err != nil {
		return nil, err
	}

	top, err := topAssignees(windowed(db, from, to))
	if err != nil {
		return nil, err
	}
	s.TopAssignees = top

	return s, nil
}

// topAssignees groups DONE tasks with an assignee, ranks by completed count
// and joins in the assignee's display fields.
func topAssignees(q *gorm.DB) ([]TopAssignee, error) {
	rows := []TopAssignee{}
	err := q.
		Select("assignee_id, COUNT(*) AS completed_count, COALESCE(SUM(paid_amount), 0) AS total_earned").
		Where("status = ? AND assignee_id <> ''", models.StatusDone).
		Group("assignee_id").
		Order("completed_count DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.AssigneeID)
	}

	var users []models.User
	if err := q.Session(&gorm.Session{NewDB: true}).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	for i := range rows {
		if u, ok := userByID[rows[i].AssigneeID]; ok {
			rows[i].Name = u.Name
			rows[i].Email = u.Email
		}
	}
	return rows, nil
}
