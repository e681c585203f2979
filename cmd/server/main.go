package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/goliatone/go-router"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/cmd/server/config"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Defaults()

	// Override from environment
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.Render.AllowedOrigins = splitCSV(origins)
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		cfg.Render.FrontendURL = frontendURL
	}
	if ogTemplate := os.Getenv("OG_TEMPLATE_PATH"); ogTemplate != "" {
		cfg.Render.OGTemplatePath = ogTemplate
	}

	// PDF config overrides
	if browserPath := os.Getenv("PDF_CHROMIUM_PATH"); browserPath != "" {
		cfg.PDF.BrowserPath = browserPath
	}
	if headless := os.Getenv("PDF_HEADLESS"); headless != "" {
		if parsed, err := strconv.ParseBool(headless); err == nil {
			cfg.PDF.Headless = parsed
		}
	}
	if args := os.Getenv("PDF_CHROMIUM_ARGS"); args != "" {
		cfg.PDF.Args = splitCSV(args)
	}
	if pdfTimeout := os.Getenv("PDF_TIMEOUT"); pdfTimeout != "" {
		if t, err := strconv.Atoi(pdfTimeout); err == nil && t > 0 {
			cfg.PDF.TimeoutSeconds = t
		}
	}
	if pageSize := os.Getenv("PDF_PAGE_SIZE"); pageSize != "" {
		cfg.PDF.PageSize = pageSize
	}
	if margin := os.Getenv("PDF_MARGIN"); margin != "" {
		cfg.PDF.Margin = margin
	}
	if scale := os.Getenv("PDF_SCALE"); scale != "" {
		if parsed, err := strconv.ParseFloat(scale, 64); err == nil {
			cfg.PDF.Scale = parsed
		}
	}

	// Log config overrides
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}

	// Create application
	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}
	defer app.Close()

	// Build server
	srv := buildServer(cfg)

	// Setup routes
	app.SetupRoutes(srv.Router())

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	go func() {
		app.Logger.Infof("starting pdf service on http://%s", addr)
		app.Logger.Infof("allowed origins: %s", strings.Join(cfg.Render.AllowedOrigins, ", "))
		if err := srv.Serve(addr); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Infof("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Errorf("shutdown error: %v", err)
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func buildServer(cfg config.Config) router.Server[*fiber.App] {
	return router.NewFiberAdapter(func(*fiber.App) *fiber.App {
		fiberApp := fiber.New(fiber.Config{
			AppName: "CV Builder PDF Service",
		})

		fiberApp.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
		}))
		fiberApp.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.Render.AllowedOrigins, ","),
			AllowMethods:     "GET,POST,PUT,DELETE",
			AllowHeaders:     "Content-Type,Authorization",
			AllowCredentials: true,
		}))

		return fiberApp
	})
}
