package services

import (
	"errors"
	"reflect"
	"testing"

	"Cinelog/models"
)

func TestParseGenres(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trims, drops empties, keeps order",
			input: "Action, Sci-Fi,, Drama",
			want:  []string{"Action", "Sci-Fi", "Drama"},
		},
		{
			name:  "duplicates preserved",
			input: "Drama,Drama, Drama",
			want:  []string{"Drama", "Drama", "Drama"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only separators and spaces",
			input: " , ,,  ",
			want:  nil,
		},
		{
			name:  "single genre",
			input: "  Horror  ",
			want:  []string{"Horror"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGenres(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseGenres(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1},
		{6, 1},
		{7, 2},
		{12, 2},
		{13, 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.count); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Matrix", "Matrix"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.input); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAuthorizeOwner(t *testing.T) {
	movie := &models.Movie{ID: 1, OwnerID: 42}

	if err := AuthorizeOwner(movie, 42); err != nil {
		t.Errorf("owner should be allowed, got %v", err)
	}

	if err := AuthorizeOwner(movie, 7); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner should get ErrForbidden, got %v", err)
	}

	if err := AuthorizeOwner(nil, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing movie should get ErrNotFound, got %v", err)
	}
}
