package services

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"Cinelog/models"
)

// firstMovieYear is the earliest accepted release year.
const firstMovieYear = 1888

// MovieForm holds the raw submitted fields so a failed form can be re-rendered
// with the user's input intact.
type MovieForm struct {
	Name        string
	Description string
	Year        string
	Genres      string
	Rating      string
	PosterURL   string
}

func ValidateRegistration(username, email, password, confirm string) models.ValidationErrors {
	var errs models.ValidationErrors

	if strings.TrimSpace(username) == "" {
		errs = append(errs, models.FieldError{Field: "username", Message: "Username required"})
	}
	if !validEmail(email) {
		errs = append(errs, models.FieldError{Field: "email", Message: "Valid email required"})
	}
	if utf8.RuneCountInString(password) < 6 {
		errs = append(errs, models.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if confirm != password {
		errs = append(errs, models.FieldError{Field: "confirm", Message: "Passwords do not match"})
	}

	return errs
}

func ValidateLogin(email, password string) models.ValidationErrors {
	var errs models.ValidationErrors

	if !validEmail(email) {
		errs = append(errs, models.FieldError{Field: "email", Message: "Valid email required"})
	}
	if password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "Password required"})
	}

	return errs
}

// ValidateMovieForm checks the submitted fields and converts them into a
// MovieInput. The same rules apply to create and update.
func ValidateMovieForm(form MovieForm) (MovieInput, models.ValidationErrors) {
	var errs models.ValidationErrors
	var in MovieInput

	in.Name = strings.TrimSpace(form.Name)
	if in.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "Name required"})
	}

	in.Description = form.Description
	if utf8.RuneCountInString(form.Description) < 10 {
		errs = append(errs, models.FieldError{Field: "description", Message: "Description must be at least 10 characters"})
	}

	year, err := strconv.Atoi(strings.TrimSpace(form.Year))
	if err != nil || year < firstMovieYear {
		errs = append(errs, models.FieldError{Field: "year", Message: "Enter a valid year"})
	}
	in.Year = year

	in.Genres = ParseGenres(form.Genres)

	if strings.TrimSpace(form.Rating) != "" {
		rating, err := strconv.ParseFloat(strings.TrimSpace(form.Rating), 64)
		if err != nil || rating < 0 || rating > 10 {
			errs = append(errs, models.FieldError{Field: "rating", Message: "Rating must be between 0 and 10"})
		} else {
			in.Rating = &rating
		}
	}

	in.PosterURL = strings.TrimSpace(form.PosterURL)

	return in, errs
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
