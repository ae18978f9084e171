// Package problem renders RFC 9457 problem+json error bodies.
package problem

import (
	"encoding/json"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	ContentType = "application/problem+json"
	BaseURI     = "https://health-journal.local/problems"
)

// Kind identifies a class of problem. Slug becomes the last segment of the type URI.
type Kind struct {
	Slug   string
	Title  string
	Status int
}

var (
	KindBadRequest  = Kind{"bad-request", "Bad Request", http.StatusBadRequest}
	KindNotFound    = Kind{"not-found", "Not Found", http.StatusNotFound}
	KindConflict    = Kind{"conflict", "Conflict", http.StatusConflict}
	KindValidation  = Kind{"validation-error", "Validation Error", http.StatusUnprocessableEntity}
	KindInternal    = Kind{"internal-error", "Internal Server Error", http.StatusInternalServerError}
	KindUpstream    = Kind{"upstream-error", "Bad Gateway", http.StatusBadGateway}
	KindUnavailable = Kind{"service-unavailable", "Service Unavailable", http.StatusServiceUnavailable}
)

var kindsByStatus = map[int]Kind{}

func init() {
	for _, k := range []Kind{KindBadRequest, KindNotFound, KindConflict, KindValidation, KindInternal, KindUpstream, KindUnavailable} {
		kindsByStatus[k.Status] = k
	}
}

// Problem is the response body. Instance and RequestID are filled by Render.
type Problem struct {
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Status    int          `json:"status"`
	Detail    string       `json:"detail,omitempty"`
	Instance  string       `json:"instance,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// FieldError points at one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func New(kind Kind, detail string) *Problem {
	return &Problem{
		Type:   BaseURI + "/" + kind.Slug,
		Title:  kind.Title,
		Status: kind.Status,
		Detail: detail,
	}
}

// FromStatus builds a problem for an arbitrary status code. Unknown codes
// get the generic about:blank type and the standard status text.
func FromStatus(status int, detail string) *Problem {
	if k, ok := kindsByStatus[status]; ok {
		return New(k, detail)
	}
	return &Problem{Type: "about:blank", Title: http.StatusText(status), Status: status, Detail: detail}
}

func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

func (p *Problem) Error() string {
	if p.Detail == "" {
		return fmt.Sprintf("%d %s", p.Status, p.Title)
	}
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}

// Render writes the problem for r, recording the request path and the
// request id assigned by the chi RequestID middleware.
func (p *Problem) Render(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if p.Instance == "" {
			p.Instance = r.URL.Path
		}
		if p.RequestID == "" {
			p.RequestID = chimw.GetReqID(r.Context())
		}
	}
	p.Write(w)
}

// Write writes the problem without request context.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func NotFound(detail string) *Problem   { return New(KindNotFound, detail) }
func BadRequest(detail string) *Problem { return New(KindBadRequest, detail) }
func Conflict(detail string) *Problem   { return New(KindConflict, detail) }

func ValidationError(detail string, errors []FieldError) *Problem {
	return New(KindValidation, detail).WithErrors(errors)
}

func InternalError(detail string) *Problem      { return New(KindInternal, detail) }
func BadGateway(detail string) *Problem         { return New(KindUpstream, detail) }
func ServiceUnavailable(detail string) *Problem { return New(KindUnavailable, detail) }
