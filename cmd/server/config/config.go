package config

// Config holds the PDF service configuration.
type Config struct {
	Server ServerConfig
	Render RenderConfig
	PDF    PDFConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port string
}

// RenderConfig holds render-specific settings. AllowedOrigins doubles as
// the CORS origin list and the navigation allowlist consulted before any
// browser navigation.
type RenderConfig struct {
	AllowedOrigins []string
	FrontendURL    string
	OGTemplatePath string
}

// PDFConfig holds headless browser settings.
type PDFConfig struct {
	BrowserPath    string
	Headless       bool
	Args           []string
	TimeoutSeconds int
	PageSize       string
	Margin         string
	Scale          float64
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		Render: RenderConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			FrontendURL:    "http://localhost:5173",
		},
		PDF: PDFConfig{
			Headless:       true,
			TimeoutSeconds: 60,
			PageSize:       "A4",
			Margin:         "0.5in",
			Scale:          1.0,
			Args: []string{
				"no-sandbox",
				"disable-setuid-sandbox",
				"disable-dev-shm-usage",
				"disable-accelerated-2d-canvas",
				"no-first-run",
				"no-zygote",
				"disable-gpu",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
