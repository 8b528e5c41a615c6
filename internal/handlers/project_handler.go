package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name      string               `json:"name"`
	ClientID  string               `json:"clientId"`
	Status    models.ProjectStatus `json:"status"`
	StartDate *time.Time           `json:"startDate"`
	EndDate   *time.Time           `json:"endDate"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name      *string               `json:"name"`
	ClientID  *string               `json:"clientId"`
	Status    *models.ProjectStatus `json:"status"`
	StartDate *time.Time            `json:"startDate"`
	EndDate   *time.Time            `json:"endDate"`
}

// GetProjects handles GET /api/projects (admin)
func GetProjects(c *gin.Context) {
	db := database.GetDB()

	var projects []models.Project
	if err := db.Order("created_at desc").Find(&projects).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := populateClients(db, projects); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// CreateProject handles POST /api/projects (admin)
func CreateProject(c *gin.Context) {
	db := database.GetDB()

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.ClientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project name and client are required"})
		return
	}

	var client models.Client
	if err := db.Where("id = ?", req.ClientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found"})
			return
		}
		respondError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.ProjectActive
	}

	project := models.Project{
		ID:        models.NewID("project"),
		Name:      strings.TrimSpace(req.Name),
		ClientID:  client.ID,
		Status:    status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := db.Create(&project).Error; err != nil {
		respondError(c, err)
		return
	}

	summary := client.Summary()
	project.Client = &summary

	c.JSON(http.StatusCreated, project)
}

// GetProjectByID handles GET /api/projects/:id (admin)
func GetProjectByID(c *gin.Context) {
	db := database.GetDB()

	var project models.Project
	if err := db.Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		respondError(c, err)
		return
	}

	list := []models.Project{project}
	if err := populateClients(db, list); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list[0])
}

// UpdateProject handles PATCH /api/projects/:id (admin)
func UpdateProject(c *gin.Context) {
	db := database.GetDB()

	var project models.Project
	if err := db.Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		respondError(c, err)
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientID != nil {
		project.ClientID = *req.ClientID
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := db.Save(&project).Error; err != nil {
		respondError(c, err)
		return
	}

	list := []models.Project{project}
	if err := populateClients(db, list); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list[0])
}

// DeleteProject handles DELETE /api/projects/:id (admin)
// Tasks under the project are left in place; there is no cascade.
func DeleteProject(c *gin.Context) {
	db := database.GetDB()

	var project models.Project
	if err := db.Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		respondError(c, err)
		return
	}

	if err := db.Delete(&project).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted",
		"id":      project.ID,
	})
}

// populateClients fills in the client summary on each project.
func populateClients(db *gorm.DB, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]string, 0, len(projects))
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.ClientID]; !ok && p.ClientID != "" {
			seen[p.ClientID] = struct{}{}
			ids = append(ids, p.ClientID)
		}
	}

	var clients []models.Client
	if err := db.Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return err
	}
	clientByID := make(map[string]models.ClientSummary, len(clients))
	for _, cl := range clients {
		clientByID[cl.ID] = cl.Summary()
	}
	for i := range projects {
		if s, ok := clientByID[projects[i].ClientID]; ok {
			summary := s
			projects[i].Client = &summary
		}
	}
	return nil
}
