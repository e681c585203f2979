package renderapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

type fakeRequest struct {
	method string
	path   string
	query  map[string]string
	body   string
}

func (r *fakeRequest) Context() context.Context { return context.Background() }
func (r *fakeRequest) Method() string           { return r.method }
func (r *fakeRequest) Path() string             { return r.path }
func (r *fakeRequest) Header(string) string     { return "" }
func (r *fakeRequest) Query(name string) string { return r.query[name] }
func (r *fakeRequest) Body() io.ReadCloser {
	if r.body == "" {
		return io.NopCloser(strings.NewReader("{}"))
	}
	return io.NopCloser(strings.NewReader(r.body))
}

type fakeResponse struct {
	headers map[string]string
	status  int
	body    []byte
	payload any
}

func newFakeResponse() *fakeResponse {
	return &fakeResponse{headers: map[string]string{}}
}

func (r *fakeResponse) SetHeader(name, value string) { r.headers[name] = value }
func (r *fakeResponse) WriteHeader(status int)       { r.status = status }
func (r *fakeResponse) Write(b []byte) (int, error) {
	r.body = append(r.body, b...)
	return len(b), nil
}
func (r *fakeResponse) WriteJSON(status int, payload any) error {
	r.status = status
	r.payload = payload
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.body = encoded
	return nil
}

type fakeEngine struct {
	pdfCalls   int
	imageCalls int
}

func (e *fakeEngine) RenderPDF(context.Context, render.PDFJob) ([]byte, error) {
	e.pdfCalls++
	return []byte("%PDF-1.4"), nil
}

func (e *fakeEngine) RenderImage(context.Context, render.ImageJob) ([]byte, error) {
	e.imageCalls++
	return []byte("\x89PNG"), nil
}

func newTestController(t *testing.T, engine render.Engine) *Controller {
	t.Helper()
	ogTemplate, err := render.LoadOGTemplate()
	if err != nil {
		t.Fatalf("LoadOGTemplate: %v", err)
	}
	svc := render.NewService(render.ServiceConfig{
		Engine:     engine,
		Allowlist:  render.Allowlist{"http://localhost:5173"},
		OGTemplate: ogTemplate,
	})
	return NewController(Config{Service: svc})
}

func errorBody(t *testing.T, res *fakeResponse) ErrorBody {
	t.Helper()
	var payload ErrorResponse
	if err := json.Unmarshal(res.body, &payload); err != nil {
		t.Fatalf("decode error body %q: %v", res.body, err)
	}
	return payload.Error
}

func TestServeRoot(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})

	for _, path := range []string{"/", ""} {
		res := newFakeResponse()
		ctrl.Serve(&fakeRequest{method: http.MethodGet, path: path}, res)
		if res.status != http.StatusOK {
			t.Fatalf("path %q: status = %d", path, res.status)
		}
		status, ok := res.payload.(StatusResponse)
		if !ok {
			t.Fatalf("path %q: payload %T", path, res.payload)
		}
		if status.Status != "CV Builder PDF Service is online" || status.Service != "pdf" {
			t.Fatalf("path %q: payload = %+v", path, status)
		}
	}
}

func TestServeHealth(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{method: http.MethodGet, path: "/health"}, res)

	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
	status := res.payload.(StatusResponse)
	if status.Status != "healthy" {
		t.Fatalf("status = %+v", status)
	}
}

func TestServeTemplates(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{method: http.MethodGet, path: "/pdf/templates"}, res)

	templates := res.payload.(TemplatesResponse)
	want := []string{"classic", "modern", "functional", "combination", "reverse-chronological"}
	if len(templates.Templates) != len(want) {
		t.Fatalf("templates = %v", templates.Templates)
	}
	for i, name := range want {
		if templates.Templates[i] != name {
			t.Fatalf("templates[%d] = %q, want %q", i, templates.Templates[i], name)
		}
	}
}

func TestServeGeneratePDF(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := newTestController(t, engine)
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{
		method: http.MethodPost,
		path:   "/pdf/generate",
		body:   `{"cv_data":{"name":"Ada"},"template":"modern","frontend_url":"http://localhost:5173"}`,
	}, res)

	if res.status != http.StatusOK {
		t.Fatalf("status = %d body = %s", res.status, res.body)
	}
	if engine.pdfCalls != 1 {
		t.Fatalf("pdf calls = %d", engine.pdfCalls)
	}
	if res.headers["Content-Type"] != "application/pdf" {
		t.Fatalf("content type = %q", res.headers["Content-Type"])
	}
	if !strings.HasPrefix(res.headers["Content-Disposition"], "attachment; filename=cv_modern_") {
		t.Fatalf("disposition = %q", res.headers["Content-Disposition"])
	}
	if res.headers["X-Render-Id"] == "" {
		t.Fatal("expected render id header")
	}
	if string(res.body) != "%PDF-1.4" {
		t.Fatalf("body = %q", res.body)
	}
}

func TestServeGeneratePDFRejectsBadOrigin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing url", `{"cv_data":{}}`, render.CodeMissingTarget},
		{"bad scheme", `{"frontend_url":"ftp://example.com"}`, render.CodeDisallowedScheme},
		{"private address", `{"frontend_url":"http://10.0.0.5"}`, render.CodePrivateAddressBlocked},
		{"not allowlisted", `{"frontend_url":"https://evil.example.com"}`, render.CodeOriginNotAllowlisted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{}
			ctrl := newTestController(t, engine)
			res := newFakeResponse()
			ctrl.Serve(&fakeRequest{method: http.MethodPost, path: "/pdf/generate", body: tt.body}, res)

			if res.status != http.StatusBadRequest {
				t.Fatalf("status = %d", res.status)
			}
			if engine.pdfCalls != 0 {
				t.Fatal("engine must not run on validation failure")
			}
			if got := errorBody(t, res); got.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestServeGeneratePDFAllowlistMessage(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{
		method: http.MethodPost,
		path:   "/pdf/generate",
		body:   `{"frontend_url":"https://evil.example.com"}`,
	}, res)

	body := errorBody(t, res)
	if !strings.Contains(body.Message, "http://localhost:5173") {
		t.Fatalf("expected allowed origins in message, got %q", body.Message)
	}
}

func TestServeGeneratePDFInvalidJSON(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{method: http.MethodPost, path: "/pdf/generate", body: "{not json"}, res)

	if res.status != http.StatusBadRequest {
		t.Fatalf("status = %d", res.status)
	}
}

func TestServeOGImage(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := newTestController(t, engine)
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{
		method: http.MethodGet,
		path:   "/og/roast",
		query:  map[string]string{"score": "7", "highlight": "bold font choices"},
	}, res)

	if res.status != http.StatusOK {
		t.Fatalf("status = %d body = %s", res.status, res.body)
	}
	if engine.imageCalls != 1 {
		t.Fatalf("image calls = %d", engine.imageCalls)
	}
	if res.headers["Content-Type"] != "image/png" {
		t.Fatalf("content type = %q", res.headers["Content-Type"])
	}
	if res.headers["Cache-Control"] != "public, max-age=604800, immutable" {
		t.Fatalf("cache control = %q", res.headers["Cache-Control"])
	}
	if res.headers["Content-Disposition"] != "inline; filename=roast-og.png" {
		t.Fatalf("disposition = %q", res.headers["Content-Disposition"])
	}
}

func TestServeOGImageValidation(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
	}{
		{"missing score", map[string]string{"highlight": "x"}},
		{"non-integer score", map[string]string{"score": "seven", "highlight": "x"}},
		{"score out of range", map[string]string{"score": "11", "highlight": "x"}},
		{"missing highlight", map[string]string{"score": "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{}
			ctrl := newTestController(t, engine)
			res := newFakeResponse()
			ctrl.Serve(&fakeRequest{method: http.MethodGet, path: "/og/roast", query: tt.query}, res)

			if res.status != http.StatusBadRequest {
				t.Fatalf("status = %d body = %s", res.status, res.body)
			}
			if engine.imageCalls != 0 {
				t.Fatal("engine must not run for invalid requests")
			}
		})
	}
}

func TestServeUnknownRoute(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})

	for _, req := range []*fakeRequest{
		{method: http.MethodGet, path: "/nope"},
		{method: http.MethodPost, path: "/pdf/templates"},
		{method: http.MethodDelete, path: "/pdf/generate"},
	} {
		res := newFakeResponse()
		ctrl.Serve(req, res)
		if res.status != http.StatusNotFound {
			t.Fatalf("%s %s: status = %d", req.method, req.path, res.status)
		}
	}
}

func TestServeTrailingSlash(t *testing.T) {
	ctrl := newTestController(t, &fakeEngine{})
	res := newFakeResponse()
	ctrl.Serve(&fakeRequest{method: http.MethodGet, path: "/health/"}, res)
	if res.status != http.StatusOK {
		t.Fatalf("status = %d", res.status)
	}
}

func TestJSONRequestDecoder(t *testing.T) {
	decoder := JSONRequestDecoder{}

	model, err := decoder.Decode(&fakeRequest{body: `{
		"cv_data": {"name": "Ada"},
		"template": "modern",
		"frontend_url": "http://localhost:5173",
		"options": {"page_size": "Letter", "landscape": true, "margin_top": "1in"},
		"extra_field": "ignored"
	}`})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if model.Template != "modern" {
		t.Fatalf("template = %q", model.Template)
	}
	if model.FrontendURL != "http://localhost:5173" {
		t.Fatalf("frontend url = %q", model.FrontendURL)
	}
	if model.CVData["name"] != "Ada" {
		t.Fatalf("cv data = %v", model.CVData)
	}
	if model.Options.PageSize != "Letter" {
		t.Fatalf("page size = %q", model.Options.PageSize)
	}
	if model.Options.Landscape == nil || !*model.Options.Landscape {
		t.Fatal("expected landscape option")
	}
	if model.Options.MarginTop != "1in" {
		t.Fatalf("margin top = %q", model.Options.MarginTop)
	}
}

func TestJSONRequestDecoderInvalid(t *testing.T) {
	decoder := JSONRequestDecoder{}
	_, err := decoder.Decode(&fakeRequest{body: "not json"})
	if err == nil {
		t.Fatal("expected error")
	}
	if render.KindFromError(err) != render.KindValidation {
		t.Fatalf("kind = %q", render.KindFromError(err))
	}
}
