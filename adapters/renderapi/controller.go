// Package renderapi implements the render service HTTP API once, behind
// transport-neutral Request/Response interfaces, so net/http and
// go-router transports stay thin.
package renderapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	errorslib "github.com/goliatone/go-errors"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

// ogCacheControl allows share images to be cached for seven days.
const ogCacheControl = "public, max-age=604800, immutable"

// Config configures the shared render API controller.
type Config struct {
	Service        *render.Service
	Logger         render.Logger
	RequestDecoder RequestDecoder
}

// Controller exposes render API handlers for multiple transports.
type Controller struct {
	service *render.Service
	logger  render.Logger
	decoder RequestDecoder
}

// NewController creates a shared render API controller.
func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = render.NopLogger{}
	}
	decoder := cfg.RequestDecoder
	if decoder == nil {
		decoder = JSONRequestDecoder{}
	}
	return &Controller{
		service: cfg.Service,
		logger:  logger,
		decoder: decoder,
	}
}

// Serve routes render endpoints using the shared controller.
func (c *Controller) Serve(req Request, res Response) {
	if res == nil {
		return
	}
	if c == nil || c.service == nil {
		WriteError(res, render.NewError(render.KindInternal, "handler is nil", nil))
		return
	}
	if req == nil {
		WriteError(res, render.NewError(render.KindInternal, "request is nil", nil))
		return
	}

	path := req.Path()
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	switch req.Method() {
	case http.MethodGet:
		switch path {
		case "", "/":
			c.handleRoot(res)
		case "/health":
			c.handleHealth(res)
		case "/pdf/templates":
			c.handleTemplates(res)
		case "/og/roast":
			c.handleOGImage(req, res)
		default:
			writeNotFound(res)
		}
	case http.MethodPost:
		switch path {
		case "/pdf/generate":
			c.handleGeneratePDF(req, res)
		default:
			writeNotFound(res)
		}
	default:
		writeNotFound(res)
	}
}

func (c *Controller) handleRoot(res Response) {
	writeJSON(res, http.StatusOK, StatusResponse{
		Status:  "CV Builder PDF Service is online",
		Service: "pdf",
	})
}

func (c *Controller) handleHealth(res Response) {
	writeJSON(res, http.StatusOK, StatusResponse{
		Status:  "healthy",
		Service: "pdf",
	})
}

func (c *Controller) handleTemplates(res Response) {
	writeJSON(res, http.StatusOK, TemplatesResponse{Templates: c.service.Templates()})
}

func (c *Controller) handleGeneratePDF(req Request, res Response) {
	model, err := c.decoder.Decode(req)
	if err != nil {
		WriteError(res, err)
		return
	}

	doc, err := c.service.GeneratePDF(req.Context(), model)
	if err != nil {
		WriteError(res, err)
		return
	}

	res.SetHeader("Content-Type", doc.ContentType)
	res.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	res.SetHeader("Content-Length", strconv.Itoa(len(doc.Bytes)))
	if doc.RenderID != "" {
		res.SetHeader("X-Render-Id", doc.RenderID)
	}
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(doc.Bytes); err != nil {
		c.logger.Errorf("pdf response write failed: %v", err)
	}
}

func (c *Controller) handleOGImage(req Request, res Response) {
	model, err := decodeOGQuery(req)
	if err != nil {
		WriteError(res, err)
		return
	}

	doc, err := c.service.GenerateOGImage(req.Context(), model)
	if err != nil {
		WriteError(res, err)
		return
	}

	res.SetHeader("Content-Type", doc.ContentType)
	res.SetHeader("Cache-Control", ogCacheControl)
	res.SetHeader("Content-Disposition", fmt.Sprintf("inline; filename=%s", doc.Filename))
	res.SetHeader("Content-Length", strconv.Itoa(len(doc.Bytes)))
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(doc.Bytes); err != nil {
		c.logger.Errorf("og response write failed: %v", err)
	}
}

func decodeOGQuery(req Request) (render.OGImageRequest, error) {
	rawScore := req.Query("score")
	if rawScore == "" {
		return render.OGImageRequest{}, render.NewError(render.KindValidation, "score is required", nil)
	}
	score, err := strconv.Atoi(rawScore)
	if err != nil {
		return render.OGImageRequest{}, render.NewError(render.KindValidation,
			fmt.Sprintf("score must be an integer, got %q", rawScore), err)
	}
	return render.OGImageRequest{
		Score:     score,
		Highlight: req.Query("highlight"),
	}, nil
}

func writeNotFound(res Response) {
	writeJSON(res, http.StatusNotFound, ErrorResponse{
		Error: ErrorBody{Message: "not found", Code: "not_found"},
	})
}

// WriteError converts an error into a JSON error response.
func WriteError(res Response, err error) {
	if err == nil {
		res.WriteHeader(http.StatusNoContent)
		return
	}
	ge := render.AsGoError(err)
	status := statusForError(ge)
	payload := ErrorResponse{
		Error: ErrorBody{
			Message: ge.Message,
			Code:    ge.TextCode,
		},
	}
	writeJSON(res, status, payload)
}

func writeJSON(res Response, status int, payload any) {
	_ = res.WriteJSON(status, payload)
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	case errorslib.CategoryNotFound:
		return http.StatusNotFound
	case errorslib.CategoryOperation:
		if err.TextCode == "canceled" {
			return http.StatusConflict
		}
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
