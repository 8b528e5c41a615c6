package models

import (
	"github.com/google/uuid"
)

// NewID generates a prefixed unique identifier, e.g. "task-6f1c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
