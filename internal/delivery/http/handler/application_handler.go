package handler

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"talent-hive/internal/delivery/http/dto"
	"talent-hive/internal/delivery/http/middleware"
	"talent-hive/internal/domain/application"
	"talent-hive/internal/mailer"
	"talent-hive/internal/pkg/response"
	"talent-hive/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type applicationMailer interface {
	SendApplicationConfirmation(ctx context.Context, app application.Application) error
	DispatchInterviewPrep(req mailer.PrepRequest) error
}

type ApplicationHandler struct {
	repo   repository.ApplicationRepository
	mail   applicationMailer
	logger *log.Logger
}

type applyRequest struct {
	UserID      string  `json:"userId" validate:"required"`
	StudentName string  `json:"studentName"`
	JobTitle    string  `json:"jobTitle" validate:"required,max=200"`
	CompanyName string  `json:"companyName" validate:"required,max=200"`
	ResumeURL   *string `json:"resumeUrl" validate:"omitempty,url"`
	Email       string  `json:"email" validate:"required,email"`
}

func NewApplicationHandler(repo repository.ApplicationRepository, mail applicationMailer, logger *log.Logger) *ApplicationHandler {
	return &ApplicationHandler{repo: repo, mail: mail, logger: logger}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/applications", h.Apply)
}

// Apply stores the application, sends the confirmation and queues the prep
// email. Mail failures never fail the request.
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req, "User ID, job title, company name, and email are required"); err != nil {
		return err
	}

	app, err := h.repo.Create(c.Context(), application.Application{
		UserID:      req.UserID,
		StudentName: req.StudentName,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		ResumeURL:   req.ResumeURL,
		Email:       req.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrApplicationInvalid) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to apply for job", nil, err)
	}

	if h.mail != nil {
		if err := h.mail.SendApplicationConfirmation(c.Context(), app); err != nil {
			h.logf("[Applications] Confirmation email failed id=%s to=%s err=%v", app.ID, app.Email, err)
		}
		err := h.mail.DispatchInterviewPrep(mailer.PrepRequest{
			StudentName: app.StudentName,
			Email:       app.Email,
			JobTitle:    app.JobTitle,
			CompanyName: app.CompanyName,
		})
		if err != nil {
			h.logf("[Applications] Interview prep not queued id=%s to=%s err=%v", app.ID, app.Email, err)
		}
	}

	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.ApplicationResponse{
		ID:          app.ID,
		UserID:      app.UserID,
		StudentName: app.StudentName,
		JobTitle:    app.JobTitle,
		CompanyName: app.CompanyName,
		ResumeURL:   app.ResumeURL,
		Email:       app.Email,
		CreatedAt:   app.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *ApplicationHandler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
