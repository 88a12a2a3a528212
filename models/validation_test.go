package models

import "testing"

func TestValidationErrorsFor(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "Name required"},
		{Field: "year", Message: "Enter a valid year"},
	}

	if got := errs.For("year"); got != "Enter a valid year" {
		t.Errorf("For(year) = %q", got)
	}
	if got := errs.For("rating"); got != "" {
		t.Errorf("For(rating) = %q, want empty", got)
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{{Field: "name", Message: "Name required"}}
	want := "validation failed: name: Name required"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
