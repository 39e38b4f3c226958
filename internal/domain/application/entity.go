package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID          uuid.UUID
	UserID      string
	StudentName string
	JobTitle    string
	CompanyName string
	ResumeURL   *string
	Email       string
	CreatedAt   time.Time
}
