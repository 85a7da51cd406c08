package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/conduit-lang/compound/internal/fixture"
	"github.com/conduit-lang/compound/pkg/web/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const blog = `
resources:
  - type: posts
    id: "1"
    attributes: {title: Hello, views: 10}
    relationships:
      author: {type: people, id: "9"}
      comments: [{type: comments, id: "5"}]
  - type: posts
    id: "2"
    attributes: {title: Second, views: 20}
  - type: people
    id: "9"
    attributes: {name: Dan}
  - type: comments
    id: "5"
    attributes: {body: First}
    relationships:
      author: {type: people, id: "9"}
`

type errorBody struct {
	Errors []struct {
		ID     string `json:"id"`
		Code   string `json:"code"`
		Source *struct {
			Parameter string `json:"parameter"`
		} `json:"source"`
	} `json:"errors"`
}

type docBody struct {
	Links    map[string]string `json:"links"`
	Data     json.RawMessage   `json:"data"`
	Included []struct {
		Type       string         `json:"type"`
		ID         string         `json:"id"`
		Attributes map[string]any `json:"attributes"`
	} `json:"included"`
	Meta map[string]any `json:"meta"`
}

func newTestServer(t *testing.T, config Config, logger *zap.Logger) *Server {
	t.Helper()
	store, err := fixture.Parse([]byte(blog))
	require.NoError(t, err)

	s, err := New(store, config, logger)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(nil, DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestShowWithInclude(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	w := do(t, s.Handler(), http.MethodGet, "/posts/1?include=author,comments.author", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, response.MediaType, w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var body docBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/posts/1?include=author,comments.author", body.Links["self"])
	require.Len(t, body.Included, 2)

	var ids []string
	for _, inc := range body.Included {
		ids = append(ids, inc.Type+":"+inc.ID)
	}
	assert.ElementsMatch(t, []string{"people:9", "comments:5"}, ids)
}

func TestListSortedWithFields(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	w := do(t, s.Handler(), http.MethodGet, "/posts?sort=-views&fields[posts]=title", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body docBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	var data []struct {
		ID         string         `json:"id"`
		Attributes map[string]any `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Len(t, data, 2)
	assert.Equal(t, "2", data[0].ID)
	assert.Equal(t, map[string]any{"title": "Second"}, data[0].Attributes)
	assert.Equal(t, float64(2), body.Meta["total"])
}

func TestListFiltered(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	w := do(t, s.Handler(), http.MethodGet, "/posts?filter[views]=20,30", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body docBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	var data []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "2", data[0].ID)
	assert.Equal(t, float64(1), body.Meta["total"])
}

func TestConditionalGet(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	first := do(t, s.Handler(), http.MethodGet, "/posts/1", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	again := do(t, s.Handler(), http.MethodGet, "/posts/1", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, again.Code)
	assert.Zero(t, again.Body.Len())
	assert.Equal(t, etag, again.Header().Get("ETag"))

	other := do(t, s.Handler(), http.MethodGet, "/posts/1?include=author", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusOK, other.Code)
	assert.NotEqual(t, etag, other.Header().Get("ETag"))
}

func TestErrors(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	tests := []struct {
		name      string
		method    string
		target    string
		status    int
		code      string
		parameter string
	}{
		{name: "unknown type", method: http.MethodGet, target: "/tags", status: http.StatusNotFound, code: "not_found"},
		{name: "unknown id", method: http.MethodGet, target: "/posts/7", status: http.StatusNotFound, code: "not_found"},
		{name: "unknown include", method: http.MethodGet, target: "/posts/1?include=editor", status: http.StatusBadRequest, code: "bad_request", parameter: "include"},
		{name: "unknown nested include", method: http.MethodGet, target: "/posts?include=comments.post", status: http.StatusBadRequest, code: "bad_request", parameter: "include"},
		{name: "unknown sort field", method: http.MethodGet, target: "/posts?sort=rating", status: http.StatusBadRequest, code: "bad_request", parameter: "sort"},
		{name: "unknown filter field", method: http.MethodGet, target: "/posts?filter[rating]=5", status: http.StatusBadRequest, code: "bad_request", parameter: "filter[rating]"},
		{name: "unsupported method", method: http.MethodPost, target: "/posts", status: http.StatusMethodNotAllowed, code: "method_not_allowed"},
		{name: "unknown route", method: http.MethodGet, target: "/posts/1/comments", status: http.StatusNotFound, code: "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s.Handler(), tt.method, tt.target, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, response.MediaType, w.Header().Get("Content-Type"))

			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Len(t, body.Errors, 1)
			assert.Equal(t, tt.code, body.Errors[0].Code)
			assert.NotEmpty(t, body.Errors[0].ID)
			if tt.parameter != "" {
				require.NotNil(t, body.Errors[0].Source)
				assert.Equal(t, tt.parameter, body.Errors[0].Source.Parameter)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	w := do(t, s.Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body docBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{
		"comments": "/comments",
		"people":   "/people",
		"posts":    "/posts",
	}, body.Links)
	assert.Equal(t, float64(4), body.Meta["resources"])
}

func TestAPIPrefix(t *testing.T) {
	config := DefaultConfig()
	config.APIPrefix = "/api"
	s := newTestServer(t, config, nil)

	assert.Equal(t, http.StatusOK, do(t, s.Handler(), http.MethodGet, "/api/posts/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s.Handler(), http.MethodGet, "/posts/1", nil).Code)

	w := do(t, s.Handler(), http.MethodGet, "/api", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body docBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/api/posts", body.Links["posts"])
}

func TestPrettyRendering(t *testing.T) {
	config := DefaultConfig()
	config.Render.PrettyPrint = true
	s := newTestServer(t, config, nil)

	w := do(t, s.Handler(), http.MethodGet, "/people/9", nil)
	assert.Contains(t, w.Body.String(), "\n  \"links\"")
}

func TestNegotiation(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	tests := []struct {
		name   string
		accept []string
		status int
	}{
		{name: "no accept header", status: http.StatusOK},
		{name: "any", accept: []string{"*/*"}, status: http.StatusOK},
		{name: "plain JSON:API", accept: []string{response.MediaType}, status: http.StatusOK},
		{name: "quality value", accept: []string{response.MediaType + ";q=0.9"}, status: http.StatusOK},
		{name: "only parameterized", accept: []string{response.MediaType + "; ext=bulk"}, status: http.StatusNotAcceptable},
		{name: "one plain instance", accept: []string{response.MediaType + "; ext=bulk, " + response.MediaType}, status: http.StatusOK},
		{name: "across header lines", accept: []string{response.MediaType + "; ext=bulk", response.MediaType}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for _, v := range tt.accept {
				header.Add("Accept", v)
			}

			w := do(t, s.Handler(), http.MethodGet, "/posts", header)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	w := do(t, s.Handler(), http.MethodGet, "/posts", http.Header{RequestIDHeader: {"abc-123"}})

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = do(t, s.Handler(), http.MethodGet, "/posts", http.Header{"x-request-id": {"lower-1"}})
	assert.Equal(t, "lower-1", w.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newTestServer(t, DefaultConfig(), zap.New(core))

	do(t, s.Handler(), http.MethodGet, "/posts/1", http.Header{RequestIDHeader: {"req-1"}})
	do(t, s.Handler(), http.MethodGet, "/tags", nil)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "/posts/1", first["path"])
	assert.Equal(t, int64(http.StatusOK), first["status"])
	assert.Greater(t, first["bytes"], int64(0))

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	h := RequestID(Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := do(t, h, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "internal_error", body.Errors[0].Code)

	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, DefaultConfig(), nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/posts/1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
