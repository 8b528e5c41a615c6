package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agency-tracker-api/internal/auth"
	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/models"
	"agency-tracker-api/internal/tasks"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateUserRequest represents the request payload for creating a user
type CreateUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Email    *string          `json:"email"`
	Role     *models.UserRole `json:"role"`
	Password *string          `json:"password"`
}

// GetUsers handles GET /api/users (admin)
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Order("created_at desc").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser handles POST /api/users (admin)
func CreateUser(c *gin.Context) {
	db := database.GetDB()

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

	user := models.User{
		ID:           models.NewID("user"),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PATCH /api/users/:id (admin)
// Role changes go through here, so only admins can promote or demote.
func UpdateUser(c *gin.Context) {
	db := database.GetDB()

	var user models.User
	if err := db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		user.PasswordHash = hash
	}

	if err := db.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	tasks.InvalidateUser(user.ID)

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id (admin)
// Tasks assigned to the user keep their assigneeId; there is no cascade.
func DeleteUser(c *gin.Context) {
	db := database.GetDB()

	var user models.User
	if err := db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err)
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	tasks.InvalidateUser(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
		"id":      user.ID,
	})
}
