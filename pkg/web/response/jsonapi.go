// Package response writes compound documents to HTTP responses.
package response

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

const (
	// MediaType is the official JSON:API media type
	MediaType = "application/vnd.api+json"
)

// IsJSONAPI checks if the request accepts JSON:API format
func IsJSONAPI(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}

	for _, part := range strings.Split(accept, ",") {
		// Parse media type to handle parameters like charset
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			// Fall back to simple check if parsing fails
			if strings.Contains(part, MediaType) {
				return true
			}
			continue
		}
		if mediaType == MediaType {
			return true
		}
	}
	return false
}

// ValidateContentType checks if the Content-Type is application/vnd.api+json
// without media type parameters. Returns true if valid, writes a 415 error
// document and returns false otherwise.
func ValidateContentType(w http.ResponseWriter, r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != MediaType {
		RenderError(w, http.StatusUnsupportedMediaType,
			fmt.Errorf("Content-Type must be %s", MediaType))
		return false
	}

	// JSON:API forbids media type parameters on Content-Type
	if len(params) > 0 {
		RenderError(w, http.StatusUnsupportedMediaType,
			fmt.Errorf("Content-Type must be %s without media type parameters", MediaType))
		return false
	}

	return true
}
