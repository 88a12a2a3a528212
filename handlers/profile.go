package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"Cinelog/middleware"
	"Cinelog/models"
	"Cinelog/services"
)

var profileTmpl *template.Template

func init() {
	profileTmpl = mustLoadTemplate("profile", "templates/pages/profile.html")
}

// ProfileHandler shows the current user and the movies they own.
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r)

	movies, err := services.GetMoviesByOwner(principal.ID)
	if err != nil {
		slog.Error("Error listing owned movies", "error", err, "user_id", principal.ID)
		serverError(w)
		return
	}

	data := struct {
		CurrentUser *models.Principal
		Movies      []models.Movie
	}{
		CurrentUser: principal,
		Movies:      movies,
	}

	if err := profileTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering profile template", "error", err)
	}
}
