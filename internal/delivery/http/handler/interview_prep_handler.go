package handler

import (
	"context"
	"log"
	"strings"

	"talent-hive/internal/delivery/http/middleware"
	"talent-hive/internal/mailer"
	"talent-hive/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type prepSender interface {
	SendInterviewPrep(ctx context.Context, req mailer.PrepRequest) error
}

type InterviewPrepHandler struct {
	sender prepSender
	logger *log.Logger
}

type interviewPrepRequest struct {
	StudentName string `json:"studentName"`
	JobTitle    string `json:"jobTitle" validate:"required,max=200"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
}

func NewInterviewPrepHandler(sender prepSender, logger *log.Logger) *InterviewPrepHandler {
	return &InterviewPrepHandler{sender: sender, logger: logger}
}

func (h *InterviewPrepHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/interview-prep", h.Send)
}

func (h *InterviewPrepHandler) Send(c fiber.Ctx) error {
	var req interviewPrepRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req, "Job title, company name, and email are required"); err != nil {
		return err
	}

	err := h.sender.SendInterviewPrep(c.Context(), mailer.PrepRequest{
		StudentName: req.StudentName,
		Email:       req.Email,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("[InterviewPrep] Send failed to=%s company=%q title=%q err=%v", req.Email, req.CompanyName, req.JobTitle, err)
		}
		// Written directly since the error middleware masks 5xx messages.
		return response.Error(c, fiber.StatusInternalServerError, "Failed to send interview preparation resources", nil)
	}

	return response.Success(c, fiber.StatusOK, "Interview preparation resources sent successfully", nil)
}
