package response

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/conduit-lang/compound/pkg/compound"
	"go.uber.org/zap"
)

// RendererConfig configures the renderer
type RendererConfig struct {
	PrettyPrint bool
	Indent      string
	Logger      *zap.Logger
}

// Renderer writes compound documents as JSON:API responses
type Renderer struct {
	prettyPrint bool
	indent      string
	logger      *zap.Logger
}

// NewRenderer creates a new response renderer
func NewRenderer() *Renderer {
	return NewRendererWithConfig(&RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom configuration
func NewRendererWithConfig(config *RendererConfig) *Renderer {
	r := &Renderer{
		prettyPrint: config.PrettyPrint,
		indent:      config.Indent,
		logger:      config.Logger,
	}
	if r.indent == "" {
		r.indent = "  "
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Encode encodes a document the way Render writes it.
func (r *Renderer) Encode(doc *compound.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil || !r.prettyPrint {
		return data, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", r.indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes doc with the JSON:API media type. The document is encoded
// before anything is written, so a failed encoding leaves w untouched.
func (r *Renderer) Render(w http.ResponseWriter, status int, doc *compound.Document) error {
	data, err := r.Encode(doc)
	if err != nil {
		r.logger.Error("failed to encode document", zap.Error(err))
		return err
	}

	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}

// Render writes doc with the default renderer.
func Render(w http.ResponseWriter, status int, doc *compound.Document) error {
	return NewRenderer().Render(w, status, doc)
}
