package tasks

import (
	"errors"
	"time"

	"agency-tracker-api/internal/cache"
	"agency-tracker-api/internal/models"

	"gorm.io/gorm"
)

// Filter holds the optional task list filters. Empty fields are ignored.
type Filter struct {
	Status        string
	AssigneeID    string
	ProjectID     string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
}

// scoped builds the role-scoped base query. Non-admin callers are always
// pinned to their own tasks; any requested assigneeId filter is overridden.
func scoped(db *gorm.DB, caller Caller, f Filter) *gorm.DB {
	q := db.Model(&models.Task{})

	if caller.IsAdmin() {
		if f.AssigneeID != "" {
			q = q.Where("assignee_id = ?", f.AssigneeID)
		}
	} else {
		q = q.Where("assignee_id = ?", caller.ID)
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	// createdAt bounds are inclusive on both ends
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	return q
}

// List returns the caller's visible tasks, newest first, with project and
// assignee summaries populated.
func List(db *gorm.DB, caller Caller, f Filter) ([]models.Task, error) {
	var result []models.Task
	if err := scoped(db, caller, f).Order("created_at desc").Find(&result).Error; err != nil {
		return nil, err
	}
	if err := Populate(db, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a single task. Employees may only fetch tasks assigned to them.
func Get(db *gorm.DB, caller Caller, taskID string) (*models.Task, error) {
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
	if err := populateOne(db, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// userSummaries caches user display projections for task population.
// User mutations invalidate entries via InvalidateUser.
var userSummaries = cache.New[string, models.UserSummary](5 * time.Minute)

// InvalidateUser drops a cached user summary after an update or delete.
func InvalidateUser(userID string) {
	userSummaries.Delete(userID)
}

// Populate fills in the display-friendly project and assignee summaries.
func Populate(db *gorm.DB, list []models.Task) error {
	if len(list) == 0 {
		return nil
	}

	projectIDs := make([]string, 0, len(list))
	seenProjects := make(map[string]struct{}, len(list))
	missingUsers := make([]string, 0, len(list))
	seenUsers := make(map[string]struct{}, len(list))

	userByID := make(map[string]models.UserSummary)
	for i := range list {
		if _, ok := seenProjects[list[i].ProjectID]; !ok && list[i].ProjectID != "" {
			seenProjects[list[i].ProjectID] = struct{}{}
			projectIDs = append(projectIDs, list[i].ProjectID)
		}
		id := list[i].AssigneeID
		if id == "" {
			continue
		}
		if s, ok := userSummaries.Get(id); ok {
			userByID[id] = s
			continue
		}
		if _, ok := seenUsers[id]; !ok {
			seenUsers[id] = struct{}{}
			missingUsers = append(missingUsers, id)
		}
	}

	projectByID := make(map[string]models.ProjectSummary, len(projectIDs))
	if len(projectIDs) > 0 {
		var projects []models.Project
		if err := db.Where("id IN ?", projectIDs).Find(&projects).Error; err != nil {
			return err
		}
		for _, p := range projects {
			projectByID[p.ID] = p.Summary()
		}
	}

	if len(missingUsers) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", missingUsers).Find(&users).Error; err != nil {
			return err
		}
		for _, u := range users {
			s := u.Summary()
			userByID[u.ID] = s
			userSummaries.Set(u.ID, s)
		}
	}

	for i := range list {
		if p, ok := projectByID[list[i].ProjectID]; ok {
			summary := p
			list[i].Project = &summary
		}
		if u, ok := userByID[list[i].AssigneeID]; ok {
			summary := u
			list[i].Assignee = &summary
		}
	}
	return nil
}

func populateOne(db *gorm.DB, task *models.Task) error {
	list := []models.Task{*task}
	if err := Populate(db, list); err != nil {
		return err
	}
	*task = list[0]
	return nil
}
