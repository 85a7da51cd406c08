package query

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/conduit-lang/compound/pkg/compound"
)

func TestParseInclude(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected []string
	}{
		{
			name:     "empty when not present",
			url:      "/api/posts",
			expected: []string{},
		},
		{
			name:     "single relationship",
			url:      "/api/posts?include=author",
			expected: []string{"author"},
		},
		{
			name:     "nested relationships",
			url:      "/api/posts?include=author,comments.author",
			expected: []string{"author", "comments.author"},
		},
		{
			name:     "trims whitespace",
			url:      "/api/posts?include=author,%20comments%20,%20tags",
			expected: []string{"author", "comments", "tags"},
		},
		{
			name:     "empty string parameter",
			url:      "/api/posts?include=",
			expected: []string{},
		},
		{
			name:     "multiple commas ignored",
			url:      "/api/posts?include=author,,comments",
			expected: []string{"author", "comments"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			result := ParseInclude(req)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseInclude() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected compound.Fieldsets
	}{
		{
			name:     "empty when not present",
			url:      "/api/posts",
			expected: compound.Fieldsets{},
		},
		{
			name:     "single type",
			url:      "/api/posts?fields[posts]=title,body",
			expected: compound.Fieldsets{"posts": {"title", "body"}},
		},
		{
			name: "multiple types",
			url:  "/api/posts?fields[posts]=title&fields[people]=name",
			expected: compound.Fieldsets{
				"posts":  {"title"},
				"people": {"name"},
			},
		},
		{
			name:     "empty fieldset hides every attribute",
			url:      "/api/posts?fields[posts]=",
			expected: compound.Fieldsets{"posts": {}},
		},
		{
			name:     "unrelated parameters ignored",
			url:      "/api/posts?fields=title&filter[x]=1&fields[]=a",
			expected: compound.Fieldsets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			result := ParseFields(req)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseFields() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/posts?sort=-created_at,%20title", nil)

	got := ParseSort(req)
	want := []string{"-created_at", "title"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSort() = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/posts?include=author&fields[people]=name&filter[status]=draft&sort=title", nil)

	got := Parse(req)
	want := Params{
		Include: []string{"author"},
		Fields:  compound.Fieldsets{"people": {"name"}},
		Filter:  map[string]string{"status": "draft"},
		Sort:    []string{"title"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestValidateIncludes(t *testing.T) {
	allowed := []string{"author", "comments.author"}

	tests := []struct {
		name     string
		includes []string
		wantErr  string
	}{
		{name: "no includes", includes: nil},
		{name: "listed path", includes: []string{"comments.author"}},
		{name: "prefix of listed path", includes: []string{"comments", "author"}},
		{name: "unknown path", includes: []string{"author", "editor"}, wantErr: "editor"},
		{name: "too deep", includes: []string{"author.employer"}, wantErr: "author.employer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIncludes(tt.includes, allowed)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateIncludes() error = %v", err)
				}
				return
			}

			var paramErr *InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("expected *InvalidParameterError, got %v", err)
			}
			if paramErr.Parameter != "include" || paramErr.Value != tt.wantErr {
				t.Errorf("got %+v, want include=%s", paramErr, tt.wantErr)
			}
		})
	}
}
