package v1

import (
	"talent-hive/internal/delivery/http/handler"
	"talent-hive/internal/delivery/http/middleware"
	"talent-hive/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Applications       *handler.ApplicationHandler
	InterviewPrep      *handler.InterviewPrepHandler
	InterviewResources *handler.InterviewResourceHandler
	Auth               *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Applications != nil {
		h.Applications.RegisterRoutes(r)
	}
	if h.InterviewPrep != nil {
		h.InterviewPrep.RegisterRoutes(r)
	}
	if h.InterviewResources != nil {
		h.InterviewResources.RegisterRoutes(r)
		if h.Auth != nil {
			admin := r.Group("/admin", h.Auth.RequireRole(jwt.RoleAdmin))
			h.InterviewResources.RegisterAdminRoutes(admin)
		}
	}
}
