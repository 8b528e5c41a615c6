package tasks

import (
	"testing"

	"agency-tracker-api/internal/models"
	"agency-tracker-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db
}

func seedProject(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()
	client := models.Client{ID: models.NewID("client"), Name: "Acme"}
	require.NoError(t, db.Create(&client).Error)
	project := models.Project{ID: models.NewID("project"), Name: "Acme Site", ClientID: client.ID, Status: models.ProjectActive}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func seedTask(t *testing.T, db *gorm.DB, mutate func(*models.Task)) models.Task {
	t.Helper()
	project := seedProject(t, db)
	task := models.Task{
		ID:            models.NewID("task"),
		ProjectID:     project.ID,
		Title:         "Deliverable",
		Status:        models.StatusBacklog,
		Priority:      models.PriorityMedium,
		PaymentStatus: models.PaymentPending,
	}
	if mutate != nil {
		mutate(&task)
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }

func statusPtr(s models.TaskStatus) *models.TaskStatus {
	return &s
}

var admin = Caller{ID: "user-admin", Role: models.RoleAdmin}

func TestApplyPayment_FullPayment(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.Price = 5000 })

	updated, err := ApplyPayment(db, task.ID, PaymentInput{PaidAmount: floatPtr(5000)})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	require.Equal(t, 5000.0, updated.PaidAmount)
	require.NotNil(t, updated.PaidAt)
}

func TestApplyPayment_PartialPayment(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.Price = 6000 })

	updated, err := ApplyPayment(db, task.ID, PaymentInput{PaidAmount: floatPtr(3000)})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPartial, updated.PaymentStatus)
	require.Nil(t, updated.PaidAt)
}

func TestApplyPayment_ZeroRevertsToPending(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.Price = 1000 })

	paid, err := ApplyPayment(db, task.ID, PaymentInput{PaidAmount: floatPtr(1000)})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)

	reverted, err := ApplyPayment(db, task.ID, PaymentInput{PaidAmount: floatPtr(0)})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPending, reverted.PaymentStatus)
	require.Nil(t, reverted.PaidAt)
}

func TestApplyPayment_CapsPaidAmountAtPrice(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.Price = 2000 })

	updated, err := ApplyPayment(db, task.ID, PaymentInput{PaidAmount: floatPtr(9999)})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	require.Equal(t, 2000.0, updated.PaidAmount)
	require.LessOrEqual(t, updated.PaidAmount, updated.Price)
}

func TestApplyPayment_Idempotent(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.Price = 100 })

	first, err := ApplyPayment(db, task.ID, PaymentInput{Price: floatPtr(100), PaidAmount: floatPtr(100)})
	require.NoError(t, err)
	require.NotNil(t, first.PaidAt)

	second, err := ApplyPayment(db, task.ID, PaymentInput{Price: floatPtr(100), PaidAmount: floatPtr(100)})
	require.NoError(t, err)
	require.Equal(t, first.PaymentStatus, second.PaymentStatus)
	require.Equal(t, first.PaidAmount, second.PaidAmount)
	require.NotNil(t, second.PaidAt)
	require.True(t, first.PaidAt.Equal(*second.PaidAt), "PaidAt must not move on a repeat payment")
}

func TestApplyPayment_ExplicitStatusOverride(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.Price = 4000 })

	override := models.PaymentPaid
	updated, err := ApplyPayment(db, task.ID, PaymentInput{
		PaidAmount: floatPtr(1000),
		Status:     &override,
	})
	require.NoError(t, err)
	// Derivation says PARTIAL but the override wins, inconsistency included.
	require.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	require.Equal(t, 1000.0, updated.PaidAmount)
}

func TestApplyPayment_NegativeAmountRejected(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, nil)

	_, err := ApplyPayment(db, task.ID, PaymentInput{PaidAmount: floatPtr(-5)})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestApplyPayment_UnknownTask(t *testing.T) {
	db := newTestDB(t)
	_, err := ApplyPayment(db, "task-missing", PaymentInput{PaidAmount: floatPtr(1)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplyUpdate_CompletedAtStampedOnce(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.AssigneeID = "user-emp" })
	employee := Caller{ID: "user-emp", Role: models.RoleEmployee}

	done, err := ApplyUpdate(db, task.ID, EmployeePatch{Status: statusPtr(models.StatusDone)}, employee)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	firstCompleted := *done.CompletedAt

	// DONE -> DONE no-op must not move the stamp
	again, err := ApplyUpdate(db, task.ID, EmployeePatch{Status: statusPtr(models.StatusDone)}, employee)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	require.True(t, firstCompleted.Equal(*again.CompletedAt))

	// Reopen and close again: first stamp persists
	reopened, err := ApplyUpdate(db, task.ID, EmployeePatch{Status: statusPtr(models.StatusInProgress)}, employee)
	require.NoError(t, err)
	require.NotNil(t, reopened.CompletedAt, "CompletedAt is monotonic")

	reclosed, err := ApplyUpdate(db, task.ID, EmployeePatch{Status: statusPtr(models.StatusDone)}, employee)
	require.NoError(t, err)
	require.True(t, firstCompleted.Equal(*reclosed.CompletedAt))
}

func TestApplyUpdate_DeliveredAtStampedOnFirstLink(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.AssigneeID = "user-emp" })
	employee := Caller{ID: "user-emp", Role: models.RoleEmployee}

	updated, err := ApplyUpdate(db, task.ID, EmployeePatch{DeliveryLink: strPtr("https://drive.example/v1")}, employee)
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredAt)
	firstDelivered := *updated.DeliveredAt

	// Replacing the link later does not refresh the stamp
	replaced, err := ApplyUpdate(db, task.ID, EmployeePatch{DeliveryLink: strPtr("https://drive.example/v2")}, employee)
	require.NoError(t, err)
	require.Equal(t, "https://drive.example/v2", replaced.DeliveryLink)
	require.True(t, firstDelivered.Equal(*replaced.DeliveredAt))
}

func TestApplyUpdate_EmptyLinkDoesNotStampDeliveredAt(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, nil)

	updated, err := ApplyUpdate(db, task.ID, AdminPatch{DeliveryLink: strPtr("")}, admin)
	require.NoError(t, err)
	require.Nil(t, updated.DeliveredAt)
}

func TestApplyUpdate_EmployeeMustBeAssignee(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.AssigneeID = "user-other" })
	employee := Caller{ID: "user-emp", Role: models.RoleEmployee}

	_, err := ApplyUpdate(db, task.ID, EmployeePatch{Status: statusPtr(models.StatusDone)}, employee)
	require.ErrorIs(t, err, ErrForbidden)

	// No write happened
	var unchanged models.Task
	require.NoError(t, db.Where("id = ?", task.ID).First(&unchanged).Error)
	require.Equal(t, models.StatusBacklog, unchanged.Status)
	require.Nil(t, unchanged.CompletedAt)
}

func TestApplyUpdate_AdminCanEditAnyTask(t *testing.T) {
	db := newTestDB(t)
	task := seedTask(t, db, func(tk *models.Task) { tk.AssigneeID = "user-other" })

	updated, err := ApplyUpdate(db, task.ID, AdminPatch{
		Title: strPtr("Renamed"),
		Price: floatPtr(750),
	}, admin)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, 750.0, updated.Price)
}

func TestCreate_RequiresTitle(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)

	_, err := Create(db, CreateInput{ProjectID: project.ID}, admin)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCreate_RequiresProjectOrClient(t *testing.T) {
	db := newTestDB(t)

	_, err := Create(db, CreateInput{Title: "X"}, admin)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCreate_Defaults(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)

	task, err := Create(db, CreateInput{Title: "X", ProjectID: project.ID}, admin)
	require.NoError(t, err)
	require.Equal(t, models.StatusBacklog, task.Status)
	require.Equal(t, models.PriorityMedium, task.Priority)
	require.Equal(t, models.PaymentPending, task.PaymentStatus)
}

func TestCreate_EmployeeCannotSetPrice(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	employee := Caller{ID: "user-emp", Role: models.RoleEmployee}

	task, err := Create(db, CreateInput{Title: "X", ProjectID: project.ID, Price: 900}, employee)
	require.NoError(t, err)
	require.Equal(t, 0.0, task.Price)
}

func TestCreate_ClientWithActiveProject(t *testing.T) {
	db := newTestDB(t)
	client := models.Client{ID: models.NewID("client"), Name: "TechStart"}
	require.NoError(t, db.Create(&client).Error)
	project := models.Project{ID: models.NewID("project"), Name: "Branding", ClientID: client.ID, Status: models.ProjectActive}
	require.NoError(t, db.Create(&project).Error)

	task, err := Create(db, CreateInput{Title: "X", ClientID: client.ID}, admin)
	require.NoError(t, err)
	require.Equal(t, project.ID, task.ProjectID)
}

func TestCreate_ClientWithoutActiveProjectGetsGenelProject(t *testing.T) {
	db := newTestDB(t)
	client := models.Client{ID: models.NewID("client"), Name: "TechStart"}
	require.NoError(t, db.Create(&client).Error)
	// A DONE project must not be reused
	closed := models.Project{ID: models.NewID("project"), Name: "Old", ClientID: client.ID, Status: models.ProjectDone}
	require.NoError(t, db.Create(&closed).Error)

	task, err := Create(db, CreateInput{Title: "X", ClientID: client.ID}, admin)
	require.NoError(t, err)

	var created models.Project
	require.NoError(t, db.Where("id = ?", task.ProjectID).First(&created).Error)
	require.Equal(t, "TechStart - Genel", created.Name)
	require.Equal(t, models.ProjectActive, created.Status)
	require.Equal(t, client.ID, created.ClientID)
}

func TestCreate_UnknownClient(t *testing.T) {
	db := newTestDB(t)

	_, err := Create(db, CreateInput{Title: "X", ClientID: "client-missing"}, admin)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}
