package response

import (
	"errors"
	"net/http"

	"github.com/DataDog/jsonapi"
	"github.com/conduit-lang/compound/pkg/compound"
	"github.com/conduit-lang/compound/pkg/web/query"
	"github.com/google/uuid"
)

// fallbackErrorDocument is written when an error document cannot be encoded
const fallbackErrorDocument = `{"errors":[{"status":"500","code":"internal_error","title":"Internal Server Error"}]}`

// NewError converts err into a JSON:API error object for the given status.
// Every error object gets a unique id so the occurrence can be traced in logs.
func NewError(status int, err error) *jsonapi.Error {
	e := &jsonapi.Error{
		ID:     uuid.NewString(),
		Status: &status,
		Code:   errorCodeFromStatus(status),
		Title:  http.StatusText(status),
	}
	if err != nil {
		e.Detail = err.Error()
	}

	var paramErr *query.InvalidParameterError
	if errors.As(err, &paramErr) {
		e.Source = &jsonapi.ErrorSource{Parameter: paramErr.Parameter}
	}
	return e
}

// ErrorDocument builds a document holding only errors.
func ErrorDocument(errs ...*jsonapi.Error) *compound.Document {
	return compound.NewDocument().SetErrors(errs)
}

// RenderError renders err as a single-error document.
func RenderError(w http.ResponseWriter, status int, err error) {
	RenderErrors(w, status, []*jsonapi.Error{NewError(status, err)})
}

// RenderErrors renders an error document with the given errors.
func RenderErrors(w http.ResponseWriter, status int, errs []*jsonapi.Error) {
	data, err := NewRenderer().Encode(ErrorDocument(errs...))
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(fallbackErrorDocument)
	}

	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	w.Write(data)
}

// errorCodeFromStatus maps HTTP status codes to error codes
func errorCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusNotAcceptable:
		return "not_acceptable"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusUnprocessableEntity:
		return "unprocessable_entity"
	case http.StatusInternalServerError:
		return "internal_error"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "error"
	}
}
