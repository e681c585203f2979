package renderapi

// Response provides a minimal response interface for transport adapters.
type Response interface {
	SetHeader(name, value string)
	WriteHeader(status int)
	Write(data []byte) (int, error)
	WriteJSON(status int, payload any) error
}

// ErrorResponse describes JSON error responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains error details.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// StatusResponse describes health and liveness payloads.
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// TemplatesResponse lists available CV templates.
type TemplatesResponse struct {
	Templates []string `json:"templates"`
}
