package app

import (
	"fmt"
	"strings"

	"talent-hive/internal/delivery/http/handler"
	"talent-hive/internal/delivery/http/middleware"
	"talent-hive/internal/delivery/http/routes"
	v1 "talent-hive/internal/delivery/http/routes/v1"
	"talent-hive/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger, "/health").Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	resources := handler.NewInterviewResourceHandler(c.Resources)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		ws.NewHandler(c.Hub, c.Config.App.WSAllowedOrigins, c.Logger),
		v1.Handlers{
			Applications:       handler.NewApplicationHandler(c.Applications, c.Dispatcher, c.Logger),
			InterviewPrep:      handler.NewInterviewPrepHandler(c.Dispatcher, c.Logger),
			InterviewResources: resources,
			Auth:               middleware.NewAuthMiddleware(c.JWT),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
