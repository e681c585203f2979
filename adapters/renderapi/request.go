package renderapi

import (
	"context"
	"encoding/json"
	"io"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

// Request provides minimal request access for transport adapters.
type Request interface {
	Context() context.Context
	Method() string
	Path() string
	Header(name string) string
	Query(name string) string
	Body() io.ReadCloser
}

// RequestDecoder parses an HTTP request into a PDF render request.
type RequestDecoder interface {
	Decode(req Request) (render.PDFRequest, error)
}

// JSONRequestDecoder decodes JSON bodies into PDF render requests.
// Unknown fields are tolerated so frontend payloads can carry extra
// metadata without breaking generation.
type JSONRequestDecoder struct{}

// Decode decodes a JSON request body into a PDF render request.
func (d JSONRequestDecoder) Decode(req Request) (render.PDFRequest, error) {
	if req == nil {
		return render.PDFRequest{}, render.NewError(render.KindInternal, "request is nil", nil)
	}
	body := req.Body()
	if body == nil {
		return render.PDFRequest{}, render.NewError(render.KindValidation, "request body is required", nil)
	}
	defer body.Close()

	var payload pdfPayload
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&payload); err != nil {
		return render.PDFRequest{}, render.NewError(render.KindValidation, "invalid request payload", err)
	}

	return render.PDFRequest{
		CVData:      payload.CVData,
		Template:    payload.Template,
		FrontendURL: payload.FrontendURL,
		Options:     payload.Options.toPDFOptions(),
	}, nil
}

type pdfPayload struct {
	CVData      map[string]any    `json:"cv_data"`
	Template    string            `json:"template,omitempty"`
	FrontendURL string            `json:"frontend_url,omitempty"`
	Options     pdfOptionsPayload `json:"options,omitempty"`
}

type pdfOptionsPayload struct {
	PageSize          string  `json:"page_size,omitempty"`
	Landscape         *bool   `json:"landscape,omitempty"`
	PrintBackground   *bool   `json:"print_background,omitempty"`
	Scale             float64 `json:"scale,omitempty"`
	MarginTop         string  `json:"margin_top,omitempty"`
	MarginBottom      string  `json:"margin_bottom,omitempty"`
	MarginLeft        string  `json:"margin_left,omitempty"`
	MarginRight       string  `json:"margin_right,omitempty"`
	PreferCSSPageSize *bool   `json:"prefer_css_page_size,omitempty"`
}

func (p pdfOptionsPayload) toPDFOptions() render.PDFOptions {
	return render.PDFOptions{
		PageSize:          p.PageSize,
		Landscape:         p.Landscape,
		PrintBackground:   p.PrintBackground,
		Scale:             p.Scale,
		MarginTop:         p.MarginTop,
		MarginBottom:      p.MarginBottom,
		MarginLeft:        p.MarginLeft,
		MarginRight:       p.MarginRight,
		PreferCSSPageSize: p.PreferCSSPageSize,
	}
}
