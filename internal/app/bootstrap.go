package app

import (
	"fmt"
	"strings"

	"skill-radar/internal/config"
	"skill-radar/internal/delivery/http/handler"
	"skill-radar/internal/delivery/http/middleware"
	"skill-radar/internal/delivery/http/routes"
	"skill-radar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()
	ws.SetDefaultHub(c.Hub)

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	reg := routes.NewRegistry(
		handler.NewHealthHandler(c.Store, c.Taxonomy),
		handler.NewAnalysisHandler(c.Analysis),
		handler.NewIngestHandler(c.Ingestion, c.Runner),
		ws.NewHandler(c.Hub, c.Logger),
	)
	reg.Register(app)
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
