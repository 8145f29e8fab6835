package models

import (
	"fmt"
	"strings"
	"time"
)

const maxCategoryNameLength = 100

// Category groups registered works. Content records refer to it by name.
type Category struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Normalize trims the input and rejects an empty or oversized name
func (in CategoryInput) Normalize() (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return in, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if len([]rune(in.Name)) > maxCategoryNameLength {
		return in, fmt.Errorf("%w: category name exceeds %d characters", ErrInvalidInput, maxCategoryNameLength)
	}
	return in, nil
}
