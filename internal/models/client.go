package models

import (
	"gorm.io/gorm"
)

// Client represents a customer of the agency
type Client struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
	gorm.Model
}

// TableName specifies the table name for Client Model
func (Client) TableName() string {
	return "clients"
}

// ClientSummary is the display-friendly projection attached to projects
type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the display projection of the client
func (c Client) Summary() ClientSummary {
	return ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email}
}
