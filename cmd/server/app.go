package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/adapters/chromium"
	renderrouter "github.com/nathangurfinkel/cv-app-ng-pdf-generator/adapters/router"
	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/cmd/server/config"
	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

// App holds the application dependencies.
type App struct {
	Config  config.Config
	Logger  *ZeroLogger
	Engine  *chromium.Engine
	Service *render.Service
}

// NewApp creates and initializes the application.
func NewApp(cfg config.Config) (*App, error) {
	logger := NewLogger(cfg.Log)

	engine := &chromium.Engine{
		BrowserPath: cfg.PDF.BrowserPath,
		Headless:    cfg.PDF.Headless,
		Timeout:     time.Duration(cfg.PDF.TimeoutSeconds) * time.Second,
		Args:        cfg.PDF.Args,
	}

	ogTemplate, err := loadOGTemplate(cfg)
	if err != nil {
		return nil, err
	}

	service := render.NewService(render.ServiceConfig{
		Engine:             engine,
		Allowlist:          render.Allowlist(cfg.Render.AllowedOrigins),
		OGTemplate:         ogTemplate,
		Logger:             logger,
		DefaultFrontendURL: cfg.Render.FrontendURL,
		PDFDefaults: render.PDFOptions{
			PageSize:     cfg.PDF.PageSize,
			Scale:        cfg.PDF.Scale,
			MarginTop:    cfg.PDF.Margin,
			MarginBottom: cfg.PDF.Margin,
			MarginLeft:   cfg.PDF.Margin,
			MarginRight:  cfg.PDF.Margin,
		},
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Engine:  engine,
		Service: service,
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Engine != nil {
		if err := a.Engine.Close(); err != nil {
			a.Logger.Errorf("engine close failed: %v", err)
		}
	}
}

// SetupRoutes registers all application routes.
func (a *App) SetupRoutes(r router.Router[*fiber.App]) {
	handler := renderrouter.NewHandler(renderrouter.Config{
		Service: a.Service,
		Logger:  a.Logger,
	})
	handler.RegisterRoutes(r)
}

func loadOGTemplate(cfg config.Config) (*render.OGTemplate, error) {
	if cfg.Render.OGTemplatePath != "" {
		tpl, err := render.LoadOGTemplateFile(cfg.Render.OGTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("loading og template %s: %w", cfg.Render.OGTemplatePath, err)
		}
		return tpl, nil
	}
	return render.LoadOGTemplate()
}
