package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Default render parameters. The PDF viewport matches the frontend's
// print layout; the OG viewport is the standard Open Graph card size.
var (
	DefaultPDFViewport = Viewport{Width: 1200, Height: 800}
	DefaultOGViewport  = Viewport{Width: 1200, Height: 630}
)

const (
	// DefaultPDFSettle gives client-side rendering time to pick up the
	// injected CV data before printing.
	DefaultPDFSettle = 2 * time.Second
	// DefaultOGSettle waits for fonts on the share card.
	DefaultOGSettle = 500 * time.Millisecond
)

// ServiceConfig wires Service dependencies.
type ServiceConfig struct {
	Engine     Engine
	Allowlist  Allowlist
	Templates  *TemplateRegistry
	OGTemplate *OGTemplate
	Logger     Logger

	// DefaultFrontendURL is used when a request carries no frontend_url.
	DefaultFrontendURL string
	FilenamePattern    string
	IDGenerator        func() string

	PDFDefaults PDFOptions
	PDFViewport Viewport
	PDFSettle   time.Duration
	OGViewport  Viewport
	OGSettle    time.Duration
}

// Service coordinates origin validation, print URL construction and the
// browser engine. It is safe for concurrent use.
type Service struct {
	engine             Engine
	allowlist          Allowlist
	templates          *TemplateRegistry
	ogTemplate         *OGTemplate
	logger             Logger
	defaultFrontendURL string
	filenamePattern    string
	idGenerator        func() string
	pdfDefaults        PDFOptions
	pdfViewport        Viewport
	pdfSettle          time.Duration
	ogViewport         Viewport
	ogSettle           time.Duration
}

// NewService creates a render service.
func NewService(cfg ServiceConfig) *Service {
	templates := cfg.Templates
	if templates == nil {
		templates = DefaultTemplates()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	idGenerator := cfg.IDGenerator
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	pdfViewport := cfg.PDFViewport
	if pdfViewport.Width <= 0 || pdfViewport.Height <= 0 {
		pdfViewport = DefaultPDFViewport
	}
	ogViewport := cfg.OGViewport
	if ogViewport.Width <= 0 || ogViewport.Height <= 0 {
		ogViewport = DefaultOGViewport
	}
	pdfSettle := cfg.PDFSettle
	if pdfSettle <= 0 {
		pdfSettle = DefaultPDFSettle
	}
	ogSettle := cfg.OGSettle
	if ogSettle <= 0 {
		ogSettle = DefaultOGSettle
	}
	pdfDefaults := cfg.PDFDefaults
	if pdfDefaults.PageSize == "" {
		pdfDefaults.PageSize = "A4"
	}
	if pdfDefaults.PrintBackground == nil {
		pdfDefaults.PrintBackground = boolPtr(true)
	}
	if pdfDefaults.MarginTop == "" && pdfDefaults.MarginBottom == "" &&
		pdfDefaults.MarginLeft == "" && pdfDefaults.MarginRight == "" {
		pdfDefaults.MarginTop = "0.5in"
		pdfDefaults.MarginBottom = "0.5in"
		pdfDefaults.MarginLeft = "0.5in"
		pdfDefaults.MarginRight = "0.5in"
	}

	return &Service{
		engine:             cfg.Engine,
		allowlist:          cfg.Allowlist,
		templates:          templates,
		ogTemplate:         cfg.OGTemplate,
		logger:             logger,
		defaultFrontendURL: cfg.DefaultFrontendURL,
		filenamePattern:    cfg.FilenamePattern,
		idGenerator:        idGenerator,
		pdfDefaults:        pdfDefaults,
		pdfViewport:        pdfViewport,
		pdfSettle:          pdfSettle,
		ogViewport:         ogViewport,
		ogSettle:           ogSettle,
	}
}

// Allowlist returns the configured origin allowlist.
func (s *Service) Allowlist() Allowlist {
	if s == nil {
		return nil
	}
	return s.allowlist
}

// Templates lists the available CV templates.
func (s *Service) Templates() []string {
	if s == nil || s.templates == nil {
		return nil
	}
	return s.templates.Names()
}

// GeneratePDF validates the target origin, navigates the browser to the
// frontend print page and returns the printed PDF. The origin validator
// runs before any browser work; on validation failure the engine is
// never invoked.
func (s *Service) GeneratePDF(ctx context.Context, req PDFRequest) (*Document, error) {
	if s == nil || s.engine == nil {
		return nil, NewError(KindInternal, "render engine is not configured", nil)
	}

	templateName := strings.TrimSpace(req.Template)
	if templateName == "" {
		templateName = DefaultTemplateName
	}
	if !s.templates.Has(templateName) {
		return nil, NewError(KindValidation, fmt.Sprintf("unknown template %q", templateName), nil)
	}

	target := req.FrontendURL
	if target == "" {
		target = s.defaultFrontendURL
	}
	origin, err := ValidateOrigin(target, s.allowlist)
	if err != nil {
		return nil, err
	}

	script, err := buildInjectionScript(req.CVData, templateName)
	if err != nil {
		return nil, NewError(KindValidation, "cv_data is not serializable", err)
	}

	renderID := s.idGenerator()
	printURL := fmt.Sprintf("%s/print/%s", origin, renderID)
	options := MergePDFOptions(s.pdfDefaults, req.Options)

	s.logger.Infof("rendering pdf template=%s render_id=%s origin=%s", templateName, renderID, origin)
	s.logger.Debugf("pdf options render_id=%s page_size=%s scale=%v margins=%s/%s/%s/%s",
		renderID, options.PageSize, options.Scale,
		options.MarginTop, options.MarginBottom, options.MarginLeft, options.MarginRight)

	pdf, err := s.engine.RenderPDF(ctx, PDFJob{
		URL:      printURL,
		Script:   script,
		Viewport: s.pdfViewport,
		Settle:   s.pdfSettle,
		Options:  options,
	})
	if err != nil {
		s.logger.Errorf("pdf render failed render_id=%s: %v", renderID, err)
		return nil, err
	}

	filename, err := renderFilename(s.filenamePattern, templateName, renderID, time.Now())
	if err != nil {
		return nil, NewError(KindInternal, "invalid filename pattern", err)
	}

	s.logger.Infof("pdf rendered render_id=%s bytes=%d", renderID, len(pdf))

	return &Document{
		Bytes:       pdf,
		ContentType: "application/pdf",
		Filename:    filename,
		RenderID:    renderID,
	}, nil
}

// GenerateOGImage renders the share card template and screenshots it.
func (s *Service) GenerateOGImage(ctx context.Context, req OGImageRequest) (*Document, error) {
	if s == nil || s.engine == nil {
		return nil, NewError(KindInternal, "render engine is not configured", nil)
	}

	if req.Score < 0 || req.Score > 10 {
		return nil, NewError(KindValidation, fmt.Sprintf("score must be between 0 and 10, got %d", req.Score), nil)
	}
	if strings.TrimSpace(req.Highlight) == "" {
		return nil, NewError(KindValidation, "highlight is required", nil)
	}
	if utf8.RuneCountInString(req.Highlight) > MaxHighlightLength {
		return nil, NewError(KindValidation, fmt.Sprintf("highlight must be at most %d characters", MaxHighlightLength), nil)
	}

	if s.ogTemplate == nil {
		return nil, NewError(KindInternal, "og template is not configured", nil)
	}
	html, err := s.ogTemplate.Render(req.Score, req.Highlight)
	if err != nil {
		return nil, err
	}

	png, err := s.engine.RenderImage(ctx, ImageJob{
		HTML:     html,
		Viewport: s.ogViewport,
		Settle:   s.ogSettle,
	})
	if err != nil {
		s.logger.Errorf("og image render failed: %v", err)
		return nil, err
	}

	s.logger.Infof("og image rendered score=%d bytes=%d", req.Score, len(png))

	return &Document{
		Bytes:       png,
		ContentType: "image/png",
		Filename:    "roast-og.png",
	}, nil
}

// buildInjectionScript assigns the CV payload and template name onto the
// print page's window object. Both values go through JSON encoding so
// attacker-influenced data cannot break out of the script.
func buildInjectionScript(cvData map[string]any, templateName string) (string, error) {
	payload := []byte("{}")
	if cvData != nil {
		encoded, err := json.Marshal(cvData)
		if err != nil {
			return "", err
		}
		payload = encoded
	}
	name, err := json.Marshal(templateName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("window.cvData = %s;\nwindow.template = %s;", payload, name), nil
}

func boolPtr(value bool) *bool {
	return &value
}
