package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// GetClients handles GET /api/clients (admin)
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := database.GetDB().Order("created_at desc").Find(&clients).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"count":   len(clients),
	})
}

// CreateClient handles POST /api/clients (admin)
func CreateClient(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client name is required"})
		return
	}

	client := models.Client{
		ID:    models.NewID("client"),
		Name:  strings.TrimSpace(req.Name),
		Phone: req.Phone,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Notes: req.Notes,
	}
	if err := database.GetDB().Create(&client).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// UpdateClient handles PATCH /api/clients/:id (admin)
func UpdateClient(c *gin.Context) {
	db := database.GetDB()

	var client models.Client
	if err := db.Where("id = ?", c.Param("id")).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		respondError(c, err)
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := db.Save(&client).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /api/clients/:id (admin)
// Projects and tasks referencing the client are left in place; there is no
// cascade.
func DeleteClient(c *gin.Context) {
	db := database.GetDB()

	var client models.Client
	if err := db.Where("id = ?", c.Param("id")).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		respondError(c, err)
		return
	}

	if err := db.Delete(&client).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client deleted",
		"id":      client.ID,
	})
}
