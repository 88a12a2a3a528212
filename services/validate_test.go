package services

import (
	"reflect"
	"testing"
)

func fieldsOf(errs interface{ For(string) string }, fields ...string) []string {
	var failed []string
	for _, f := range fields {
		if errs.For(f) != "" {
			failed = append(failed, f)
		}
	}
	return failed
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		confirm    string
		wantFields []string
	}{
		{
			name:     "valid",
			username: "alice", email: "alice@example.com", password: "secret1", confirm: "secret1",
			wantFields: nil,
		},
		{
			name:     "empty username",
			username: "   ", email: "alice@example.com", password: "secret1", confirm: "secret1",
			wantFields: []string{"username"},
		},
		{
			name:     "malformed email",
			username: "alice", email: "not-an-email", password: "secret1", confirm: "secret1",
			wantFields: []string{"email"},
		},
		{
			name:     "short password",
			username: "alice", email: "alice@example.com", password: "12345", confirm: "12345",
			wantFields: []string{"password"},
		},
		{
			name:     "confirmation mismatch",
			username: "alice", email: "alice@example.com", password: "secret1", confirm: "secret2",
			wantFields: []string{"confirm"},
		},
		{
			name:     "everything wrong",
			username: "", email: "", password: "x", confirm: "y",
			wantFields: []string{"username", "email", "password", "confirm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegistration(tt.username, tt.email, tt.password, tt.confirm)
			got := fieldsOf(errs, "username", "email", "password", "confirm")
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("failed fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin("alice@example.com", "pw"); len(errs) != 0 {
		t.Errorf("valid login rejected: %v", errs)
	}
	if errs := ValidateLogin("nope", "pw"); errs.For("email") == "" {
		t.Error("malformed email accepted")
	}
	if errs := ValidateLogin("alice@example.com", ""); errs.For("password") == "" {
		t.Error("empty password accepted")
	}
}

func TestValidateMovieForm(t *testing.T) {
	valid := MovieForm{
		Name:        "The Matrix",
		Description: "A hacker discovers reality is a simulation.",
		Year:        "1999",
		Genres:      "Action, Sci-Fi,, Drama",
		Rating:      "8.7",
		PosterURL:   "https://example.com/matrix.jpg",
	}

	t.Run("valid form converts", func(t *testing.T) {
		in, errs := ValidateMovieForm(valid)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if in.Name != "The Matrix" || in.Year != 1999 {
			t.Errorf("unexpected input: %+v", in)
		}
		if !reflect.DeepEqual(in.Genres, []string{"Action", "Sci-Fi", "Drama"}) {
			t.Errorf("genres = %v", in.Genres)
		}
		if in.Rating == nil || *in.Rating != 8.7 {
			t.Errorf("rating = %v, want 8.7", in.Rating)
		}
	})

	t.Run("empty rating stays nil", func(t *testing.T) {
		form := valid
		form.Rating = ""
		in, errs := ValidateMovieForm(form)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if in.Rating != nil {
			t.Errorf("rating = %v, want nil", *in.Rating)
		}
	})

	t.Run("zero rating is kept, not nil", func(t *testing.T) {
		form := valid
		form.Rating = "0"
		in, errs := ValidateMovieForm(form)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if in.Rating == nil || *in.Rating != 0 {
			t.Errorf("rating = %v, want 0", in.Rating)
		}
	})

	t.Run("field failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*MovieForm)
			field  string
		}{
			{"empty name", func(f *MovieForm) { f.Name = "  " }, "name"},
			{"short description", func(f *MovieForm) { f.Description = "too short" }, "description"},
			{"year before 1888", func(f *MovieForm) { f.Year = "1887" }, "year"},
			{"non-numeric year", func(f *MovieForm) { f.Year = "soon" }, "year"},
			{"rating above 10", func(f *MovieForm) { f.Rating = "10.5" }, "rating"},
			{"negative rating", func(f *MovieForm) { f.Rating = "-1" }, "rating"},
			{"non-numeric rating", func(f *MovieForm) { f.Rating = "great" }, "rating"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				form := valid
				tt.mutate(&form)
				_, errs := ValidateMovieForm(form)
				if errs.For(tt.field) == "" {
					t.Errorf("expected error on %q, got %v", tt.field, errs)
				}
			})
		}
	})

	t.Run("first movie year is accepted", func(t *testing.T) {
		form := valid
		form.Year = "1888"
		_, errs := ValidateMovieForm(form)
		if len(errs) != 0 {
			t.Errorf("1888 rejected: %v", errs)
		}
	})
}
