package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the kanban status of a task
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "BACKLOG"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusReview     TaskStatus = "REVIEW"
	StatusDone       TaskStatus = "DONE"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// PaymentStatus represents how much of a task's price has been collected
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Task represents a unit of billable work inside a project.
// CompletedAt, DeliveredAt and PaidAt are stamped by the lifecycle engine,
// never written directly by handlers.
type Task struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	ProjectID     string          `json:"projectId" gorm:"column:project_id;not null;index"`
	AssigneeID    string          `json:"assigneeId" gorm:"column:assignee_id;index"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description"`
	Status        TaskStatus      `json:"status" gorm:"not null;default:'BACKLOG';index"`
	Priority      TaskPriority    `json:"priority" gorm:"default:'MEDIUM'"`
	DueDate       *time.Time      `json:"dueDate" gorm:"column:due_date;index"`
	DeliveryLink  string          `json:"deliveryLink" gorm:"column:delivery_link"`
	DeliveredAt   *time.Time      `json:"deliveredAt" gorm:"column:delivered_at"`
	CompletedAt   *time.Time      `json:"completedAt" gorm:"column:completed_at"`
	Price         float64         `json:"price" gorm:"default:0"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" gorm:"column:payment_status;not null;default:'PENDING';index"`
	PaidAmount    float64         `json:"paidAmount" gorm:"column:paid_amount;default:0"`
	PaidAt        *time.Time      `json:"paidAt" gorm:"column:paid_at"`
	Project       *ProjectSummary `json:"project,omitempty" gorm:"-"`
	Assignee      *UserSummary    `json:"assignee,omitempty" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
