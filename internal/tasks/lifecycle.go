package tasks

import (
	"errors"
	"strings"
	"time"

	"agency-tracker-api/internal/models"

	"gorm.io/gorm"
)

// Patch is a role-tagged partial update. The two variants encode the field
// permission matrix at the type level: a handler binds the caller's request
// into the variant matching their role, so disallowed fields never reach the
// engine at all.
type Patch interface {
	apply(t *models.Task, now time.Time)
}

// AdminPatch carries every mutable task field.
type AdminPatch struct {
	ProjectID    *string              `json:"projectId"`
	AssigneeID   *string              `json:"assigneeId"`
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Status       *models.TaskStatus   `json:"status"`
	Priority     *models.TaskPriority `json:"priority"`
	DueDate      *time.Time           `json:"dueDate"`
	DeliveryLink *string              `json:"deliveryLink"`
	Price        *float64             `json:"price"`
}

func (p AdminPatch) apply(t *models.Task, now time.Time) {
	prev := t.Status
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.AssigneeID != nil {
		t.AssigneeID = *p.AssigneeID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.DeliveryLink != nil {
		t.DeliveryLink = *p.DeliveryLink
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	stampTransitions(t, prev, p.DeliveryLink, now)
}

// EmployeePatch carries the only fields an assignee may change.
type EmployeePatch struct {
	Status       *models.TaskStatus `json:"status"`
	DeliveryLink *string            `json:"deliveryLink"`
}

func (p EmployeePatch) apply(t *models.Task, now time.Time) {
	prev := t.Status
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DeliveryLink != nil {
		t.DeliveryLink = *p.DeliveryLink
	}
	stampTransitions(t, prev, p.DeliveryLink, now)
}

// stampTransitions derives the one-shot timestamps after a patch is applied.
// CompletedAt is stamped only on the first-ever transition into DONE;
// re-closing a reopened task does not refresh it. DeliveredAt is stamped the
// first time a non-empty delivery link is attached.
func stampTransitions(t *models.Task, prev models.TaskStatus, link *string, now time.Time) {
	if t.Status == models.StatusDone && prev != models.StatusDone && t.CompletedAt == nil {
		t.CompletedAt = &now
	}
	if link != nil && *link != "" && t.DeliveredAt == nil {
		t.DeliveredAt = &now
	}
}

// ApplyUpdate loads the task, checks ownership and applies the patch.
// Non-admin callers must be the task's current assignee. The task is written
// back in full, or not at all.
func ApplyUpdate(db *gorm.DB, taskID string, patch Patch, caller Caller) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !caller.IsAdmin() && task.AssigneeID != caller.ID {
		return nil, ErrForbidden
	}

	patch.apply(&task, time.Now().UTC())

	if err := db.Save(&task).Error; err != nil {
		return nil, err
	}
	if err := populateOne(db, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateInput is the payload for creating a task. Either ProjectID or
// ClientID must be set; with only a ClientID the task lands in the client's
// sole ACTIVE project, created on the fly when missing.
type CreateInput struct {
	Title       string              `json:"title"`
	ProjectID   string              `json:"projectId"`
	ClientID    string              `json:"clientId"`
	AssigneeID  string              `json:"assigneeId"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	Price       float64             `json:"price"`
}

// Create validates the input, resolves the target project and inserts the
// task. Only admins may set a price; for everyone else it is forced to 0.
func Create(db *gorm.DB, in CreateInput, caller Caller) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("task title is required")
	}
	if in.Price < 0 {
		return nil, invalid("price cannot be negative")
	}

	projectID, err := resolveProject(db, in.ProjectID, in.ClientID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusBacklog
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	price := in.Price
	if !caller.IsAdmin() {
		price = 0
	}

	task := models.Task{
		ID:            models.NewID("task"),
		ProjectID:     projectID,
		AssigneeID:    in.AssigneeID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Status:        status,
		Priority:      priority,
		DueDate:       in.DueDate,
		Price:         price,
		PaymentStatus: models.PaymentPending,
	}

	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	if err := populateOne(db, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// resolveProject returns the project the new task belongs to. A direct
// projectId must exist; a clientId resolves to the client's first ACTIVE
// project, falling back to a fresh "{ClientName} - Genel" project.
func resolveProject(db *gorm.DB, projectID, clientID string) (string, error) {
	if projectID != "" {
		var project models.Project
		if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", invalid("project not found")
			}
			return "", err
		}
		return project.ID, nil
	}

	if clientID == "" {
		return "", invalid("projectId or clientId is required")
	}

	var client models.Client
	if err := db.Where("id = ?", clientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", invalid("client not found")
		}
		return "", err
	}

	var project models.Project
	err := db.Where("client_id = ? AND status = ?", client.ID, models.ProjectActive).
		Order("created_at asc").
		First(&project).Error
	if err == nil {
		return project.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	project = models.Project{
		ID:       models.NewID("project"),
		Name:     client.Name + " - Genel",
		ClientID: client.ID,
		Status:   models.ProjectActive,
	}
	if err := db.Create(&project).Error; err != nil {
		return "", err
	}
	return project.ID, nil
}

// PaymentInput carries a payment reconciliation request. Status, when set,
// overrides the derived payment status unconditionally.
type PaymentInput struct {
	Price      *float64              `json:"price"`
	PaidAmount *float64              `json:"paidAmount"`
	Status     *models.PaymentStatus `json:"paymentStatus"`
}

// ApplyPayment assigns any supplied amounts and reconciles the payment state.
// Idempotent for a fixed input apart from the one-time PaidAt stamp.
// The admin gate lives at the route level.
func ApplyPayment(db *gorm.DB, taskID string, in PaymentInput) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Price != nil {
		if *in.Price < 0 {
			return nil, invalid("price cannot be negative")
		}
		task.Price = *in.Price
	}
	if in.PaidAmount != nil {
		if *in.PaidAmount < 0 {
			return nil, invalid("paidAmount cannot be negative")
		}
		task.PaidAmount = *in.PaidAmount
	}

	reconcilePayment(&task, time.Now().UTC())

	if in.Status != nil {
		// Manual override escape hatch; may leave price/paidAmount/status
		// deliberately inconsistent.
		task.PaymentStatus = *in.Status
	}

	if err := db.Save(&task).Error; err != nil {
		return nil, err
	}
	if err := populateOne(db, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// reconcilePayment derives PaymentStatus and PaidAt from Price/PaidAmount.
// PaidAmount is capped at Price; PaidAt is stamped once on reaching PAID and
// cleared whenever the status reverts.
func reconcilePayment(t *models.Task, now time.Time) {
	switch {
	case t.PaidAmount == 0:
		t.PaymentStatus = models.PaymentPending
		t.PaidAt = nil
	case t.PaidAmount >= t.Price:
		t.PaymentStatus = models.PaymentPaid
		t.PaidAmount = t.Price
		if t.PaidAt == nil {
			t.PaidAt = &now
		}
	default:
		t.PaymentStatus = models.PaymentPartial
		t.PaidAt = nil
	}
}
