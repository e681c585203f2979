package render

import (
	"context"
	"time"
)

// Viewport sets the emulated browser viewport in CSS pixels.
type Viewport struct {
	Width  int64
	Height int64
}

// PDFOptions control Chromium print-to-PDF output. Zero values fall back
// to engine or service defaults. Margins accept CSS-style lengths
// (in, cm, mm, pt, px); bare numbers are inches.
type PDFOptions struct {
	PageSize          string
	Landscape         *bool
	PrintBackground   *bool
	Scale             float64
	MarginTop         string
	MarginBottom      string
	MarginLeft        string
	MarginRight       string
	PreferCSSPageSize *bool
}

// MergePDFOptions overlays non-zero override fields on top of base.
func MergePDFOptions(base, override PDFOptions) PDFOptions {
	merged := base
	if override.PageSize != "" {
		merged.PageSize = override.PageSize
	}
	if override.Landscape != nil {
		merged.Landscape = override.Landscape
	}
	if override.PrintBackground != nil {
		merged.PrintBackground = override.PrintBackground
	}
	if override.Scale != 0 {
		merged.Scale = override.Scale
	}
	if override.MarginTop != "" {
		merged.MarginTop = override.MarginTop
	}
	if override.MarginBottom != "" {
		merged.MarginBottom = override.MarginBottom
	}
	if override.MarginLeft != "" {
		merged.MarginLeft = override.MarginLeft
	}
	if override.MarginRight != "" {
		merged.MarginRight = override.MarginRight
	}
	if override.PreferCSSPageSize != nil {
		merged.PreferCSSPageSize = override.PreferCSSPageSize
	}
	return merged
}

// PDFJob asks the engine to navigate to a URL and print the page. The
// URL must be built from a validated origin; the engine performs no
// validation of its own.
type PDFJob struct {
	URL      string
	Script   string // evaluated after navigation, before the settle wait
	Viewport Viewport
	Settle   time.Duration
	Options  PDFOptions
}

// ImageJob asks the engine to load inline HTML and screenshot the
// viewport as PNG.
type ImageJob struct {
	HTML     string
	Viewport Viewport
	Settle   time.Duration
}

// Engine drives a headless browser.
type Engine interface {
	RenderPDF(ctx context.Context, job PDFJob) ([]byte, error)
	RenderImage(ctx context.Context, job ImageJob) ([]byte, error)
}

// Document is rendered output plus response metadata.
type Document struct {
	Bytes       []byte
	ContentType string
	Filename    string
	RenderID    string
}

// PDFRequest models a CV PDF generation request.
type PDFRequest struct {
	CVData      map[string]any
	Template    string
	FrontendURL string
	Options     PDFOptions
}

// OGImageRequest models an Open Graph share image request.
type OGImageRequest struct {
	Score     int
	Highlight string
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
