package handlers

import (
	"net/http"
	"time"

	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"
	"agency-tracker-api/internal/realtime"
	"agency-tracker-api/internal/tasks"

	"github.com/gin-gonic/gin"
)

// notifyTask pushes a realtime event to the acting user and the task's
// assignee.
func notifyTask(eventType, actorID string, task *models.Task) {
	realtime.GetHub().Publish(
		[]string{actorID, task.AssigneeID},
		realtime.Event{Type: eventType, TaskID: task.ID, ActorID: actorID},
	)
}

/*
*
GetTasks handles GET /api/tasks
Lists tasks role-scoped: admins see everything and may filter by assignee,
employees only ever see their own tasks.
Optional query params: status, assigneeId, projectId, paymentStatus, from, to.
*/
func GetTasks(c *gin.Context) {
	caller := callerFrom(c)

	from, ok := parseDateParam(c.Query("from"), false)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return
	}
	to, ok := parseDateParam(c.Query("to"), true)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return
	}

	filter := tasks.Filter{
		Status:        c.Query("status"),
		AssigneeID:    c.Query("assigneeId"),
		ProjectID:     c.Query("projectId"),
		PaymentStatus: c.Query("paymentStatus"),
		From:          from,
		To:            to,
	}

	list, err := tasks.List(database.GetDB(), caller, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": list,
		"count": len(list),
	})
}

/*
*
CreateTask handles POST /api/tasks
Creates a task; the engine resolves the target project from projectId or
clientId and ignores the price unless the caller is an admin.
*/
func CreateTask(c *gin.Context) {
	caller := callerFrom(c)

	var input tasks.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tasks.Create(database.GetDB(), input, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	notifyTask("task_created", caller.ID, task)

	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
// Employees may only fetch tasks assigned to them.
func GetTaskByID(c *gin.Context) {
	caller := callerFrom(c)

	task, err := tasks.Get(database.GetDB(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /api/tasks/:id
// The request body is bound into the patch variant matching the caller's
// role, so fields outside the role's permission set are silently dropped
// before the engine ever sees them.
func UpdateTask(c *gin.Context) {
	caller := callerFrom(c)
	db := database.GetDB()

	var patch tasks.Patch
	if caller.IsAdmin() {
		var p tasks.AdminPatch
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch = p
	} else {
		var p tasks.EmployeePatch
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch = p
	}

	task, err := tasks.ApplyUpdate(db, c.Param("id"), patch, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	notifyTask("task_updated", caller.ID, task)

	c.JSON(http.StatusOK, task)
}

// ApplyTaskPayment handles PATCH /api/tasks/:id/payment (admin only; the
// route is behind AdminRequired). Derives paymentStatus from the amounts
// unless an explicit status override is supplied.
func ApplyTaskPayment(c *gin.Context) {
	caller := callerFrom(c)

	var input tasks.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tasks.ApplyPayment(database.GetDB(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	notifyTask("task_payment_updated", caller.ID, task)

	c.JSON(http.StatusOK, task)
}

// GetDashboard handles GET /api/dashboard
// Role-scoped summary; the payment block is admin only.
func GetDashboard(c *gin.Context) {
	caller := callerFrom(c)

	dashboard, err := tasks.BuildDashboard(database.GetDB(), caller, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
