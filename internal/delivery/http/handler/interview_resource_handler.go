package handler

import (
	"strings"

	"talent-hive/internal/delivery/http/dto"
	"talent-hive/internal/delivery/http/middleware"
	"talent-hive/internal/pkg/response"
	"talent-hive/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InterviewResourceHandler struct {
	uc usecase.InterviewResourceUsecase
}

type refreshResourcesRequest struct {
	JobTitle    string `json:"jobTitle" validate:"required,max=200"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
}

func NewInterviewResourceHandler(uc usecase.InterviewResourceUsecase) *InterviewResourceHandler {
	return &InterviewResourceHandler{uc: uc}
}

func (h *InterviewResourceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/interview-resources", h.Get)
}

// RegisterAdminRoutes expects r to be behind admin auth.
func (h *InterviewResourceHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/interview-resources/refresh", h.Refresh)
}

func (h *InterviewResourceHandler) Get(c fiber.Ctx) error {
	jobTitle := strings.TrimSpace(c.Query("job_title"))
	companyName := strings.TrimSpace(c.Query("company_name"))
	if jobTitle == "" || companyName == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "job_title and company_name are required", nil, nil)
	}

	resources := h.uc.GetInterviewResources(c.Context(), jobTitle, companyName)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.InterviewResourcesResponse{
		CompanyName: companyName,
		JobTitle:    jobTitle,
		Resources:   resources,
	})
}

func (h *InterviewResourceHandler) Refresh(c fiber.Ctx) error {
	var req refreshResourcesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if err := validateRequest(req, "Job title and company name are required"); err != nil {
		return err
	}

	resources := h.uc.RefreshInterviewResources(c.Context(), req.JobTitle, req.CompanyName)
	return response.Success(c, fiber.StatusOK, "Interview resources refreshed", dto.InterviewResourcesResponse{
		CompanyName: req.CompanyName,
		JobTitle:    req.JobTitle,
		Resources:   resources,
	})
}
