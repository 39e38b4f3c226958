package dto

import "github.com/google/uuid"

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	StudentName string    `json:"studentName"`
	JobTitle    string    `json:"jobTitle"`
	CompanyName string    `json:"companyName"`
	ResumeURL   *string   `json:"resumeUrl"`
	Email       string    `json:"email"`
	CreatedAt   string    `json:"createdAt"`
}
