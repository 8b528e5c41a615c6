package models

import (
	"gorm.io/gorm"
)

// TaskComment represents a note left on a task. Comments are immutable once
// created and are listed newest first.
type TaskComment struct {
	ID     string       `json:"id" gorm:"primaryKey"`
	TaskID string       `json:"taskId" gorm:"column:task_id;not null;index"`
	UserID string       `json:"userId" gorm:"column:user_id;not null"`
	Text   string       `json:"text" gorm:"not null"`
	Author *UserSummary `json:"author,omitempty" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for TaskComment Model
func (TaskComment) TableName() string {
	return "task_comments"
}
