package routes

import (
	"talent-hive/internal/delivery/http/handler"
	v1 "talent-hive/internal/delivery/http/routes/v1"
	"talent-hive/internal/pkg/jwt"
	"talent-hive/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, v1Handlers v1.Handlers) *Registry {
	return &Registry{health: health, ws: wsHandler, v1: v1Handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

// registerWS exposes the notification feed to admins only. A nil Auth
// rejects every request.
func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws/notifications", r.v1.Auth.RequireRole(jwt.RoleAdmin), r.ws.HandleNotifications)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
