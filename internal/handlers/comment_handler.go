package handlers

import (
	"net/http"
	"strings"

	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"
	"agency-tracker-api/internal/tasks"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCommentRequest represents the request payload for adding a comment
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// GetTaskComments handles GET /api/tasks/:id/comments
// Access mirrors task access: admin or the task's assignee.
func GetTaskComments(c *gin.Context) {
	caller := callerFrom(c)
	db := database.GetDB()

	task, err := tasks.Get(db, caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var comments []models.TaskComment
	if err := db.Where("task_id = ?", task.ID).Order("created_at desc").Find(&comments).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := populateAuthors(db, comments); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"count":    len(comments),
	})
}

// CreateTaskComment handles POST /api/tasks/:id/comments
// Comments are immutable once created.
func CreateTaskComment(c *gin.Context) {
	caller := callerFrom(c)
	db := database.GetDB()

	task, err := tasks.Get(db, caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comment := models.TaskComment{
		ID:     models.NewID("comment"),
		TaskID: task.ID,
		UserID: caller.ID,
		Text:   text,
	}
	if err := db.Create(&comment).Error; err != nil {
		respondError(c, err)
		return
	}

	single := []models.TaskComment{comment}
	if err := populateAuthors(db, single); err != nil {
		respondError(c, err)
		return
	}

	notifyTask("task_comment_added", caller.ID, task)

	c.JSON(http.StatusCreated, single[0])
}

// populateAuthors fills in the author summary on each comment.
func populateAuthors(db *gorm.DB, comments []models.TaskComment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, cm := range comments {
		if _, ok := seen[cm.UserID]; !ok {
			seen[cm.UserID] = struct{}{}
			ids = append(ids, cm.UserID)
		}
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}
	userByID := make(map[string]models.UserSummary, len(users))
	for _, u := range users {
		userByID[u.ID] = u.Summary()
	}
	for i := range comments {
		if s, ok := userByID[comments[i].UserID]; ok {
			summary := s
			comments[i].Author = &summary
		}
	}
	return nil
}
