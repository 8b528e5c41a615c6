package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectActive ProjectStatus = "ACTIVE"
	ProjectDone   ProjectStatus = "DONE"
)

// Project represents a body of work owned by exactly one client
type Project struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	ClientID  string         `json:"clientId" gorm:"column:client_id;not null;index"`
	Status    ProjectStatus  `json:"status" gorm:"not null;default:'ACTIVE'"`
	StartDate *time.Time     `json:"startDate" gorm:"column:start_date"`
	EndDate   *time.Time     `json:"endDate" gorm:"column:end_date"`
	Client    *ClientSummary `json:"client,omitempty" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}

// ProjectSummary is the display-friendly projection attached to tasks
type ProjectSummary struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Status ProjectStatus `json:"status"`
}

// Summary returns the display projection of the project
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name, Status: p.Status}
}
