package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSortFields(t *testing.T) {
	got := ParseSortFields([]string{"-views", "title"})
	want := []SortField{{Name: "views", Descending: true}, {Name: "title"}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSortFields() = %v, want %v", got, want)
	}
}

func TestValidateSortFields(t *testing.T) {
	valid := []string{"id", "title", "views"}

	tests := []struct {
		name    string
		sorts   []string
		wantErr string
	}{
		{name: "no sort", sorts: nil},
		{name: "ascending and descending", sorts: []string{"-views", "title"}},
		{name: "unknown field", sorts: []string{"title", "-rating"}, wantErr: "-rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSortFields(tt.sorts, valid)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateSortFields() error = %v", err)
				}
				return
			}

			var paramErr *InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("expected *InvalidParameterError, got %v", err)
			}
			if paramErr.Parameter != "sort" || paramErr.Value != tt.wantErr {
				t.Errorf("got %+v, want sort=%s", paramErr, tt.wantErr)
			}
		})
	}
}
