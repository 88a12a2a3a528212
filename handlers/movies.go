package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"Cinelog/middleware"
	"Cinelog/models"
	"Cinelog/services"
)

var indexTmpl *template.Template
var detailsTmpl *template.Template
var addTmpl *template.Template
var editTmpl *template.Template

func init() {
	indexTmpl = mustLoadTemplate("index", "templates/pages/index.html")
	detailsTmpl = mustLoadTemplate("details", "templates/pages/movie_details.html")
	addTmpl = mustLoadTemplate("add", "templates/pages/movie_add.html")
	editTmpl = mustLoadTemplate("edit", "templates/pages/movie_edit.html")
}

type indexData struct {
	CurrentUser *models.Principal
	Movies      []models.Movie
	Search      string
	Sort        string
	CurrentPage int
	TotalPages  int
}

type movieFormData struct {
	CurrentUser *models.Principal
	Errors      models.ValidationErrors
	Data        services.MovieForm
	MovieID     int64 // 0 on the add form
}

// MoviesHandler serves the public listing: optional case-insensitive substring
// search on the name, optional year/rating sort, 6 movies per page.
func MoviesHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	params := services.ListParams{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
		Page:   page,
	}

	movies, totalPages, err := services.ListMovies(params)
	if err != nil {
		slog.Error("Error listing movies", "error", err)
		serverError(w)
		return
	}

	data := indexData{
		CurrentUser: GetCurrentUser(r),
		Movies:      movies,
		Search:      params.Search,
		Sort:        params.Sort,
		CurrentPage: page,
		TotalPages:  totalPages,
	}

	if err := indexTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering index template", "error", err)
	}
}

func MovieDetailsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	movie, err := services.GetMovieByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		slog.Error("Error getting movie", "error", err, "movie_id", id)
		serverError(w)
		return
	}

	data := struct {
		CurrentUser *models.Principal
		Movie       *models.Movie
	}{
		CurrentUser: GetCurrentUser(r),
		Movie:       movie,
	}

	if err := detailsTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering details template", "error", err, "movie_id", id)
	}
}

func AddMovieFormHandler(w http.ResponseWriter, r *http.Request) {
	renderMovieForm(w, addTmpl, http.StatusOK, movieFormData{
		CurrentUser: middleware.Principal(r),
	})
}

func CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r)

	form := movieFormFromRequest(r)
	in, errs := services.ValidateMovieForm(form)
	if len(errs) > 0 {
		renderMovieForm(w, addTmpl, http.StatusUnprocessableEntity, movieFormData{
			CurrentUser: principal,
			Errors:      errs,
			Data:        form,
		})
		return
	}

	if url, ok := uploadPoster(w, r); ok {
		if url != "" {
			in.PosterURL = url
		}
	} else {
		return
	}

	// The owner is always the session principal, never a form field
	movie, err := services.CreateMovie(principal.ID, in)
	if err != nil {
		slog.Error("Error creating movie", "error", err, "user_id", principal.ID)
		serverError(w)
		return
	}

	slog.Info("Movie created", "movie_id", movie.ID, "owner_id", principal.ID)
	http.Redirect(w, r, fmt.Sprintf("/movies/%d", movie.ID), http.StatusSeeOther)
}

func EditMovieFormHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r)

	movie := loadOwnedMovie(w, r, principal)
	if movie == nil {
		return
	}

	renderMovieForm(w, editTmpl, http.StatusOK, movieFormData{
		CurrentUser: principal,
		MovieID:     movie.ID,
		Data: services.MovieForm{
			Name:        movie.Name,
			Description: movie.Description,
			Year:        strconv.Itoa(movie.Year),
			Genres:      movie.Genres,
			Rating:      formatRating(movie.Rating),
			PosterURL:   movie.PosterURL,
		},
	})
}

func UpdateMovieHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r)

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	form := movieFormFromRequest(r)
	in, errs := services.ValidateMovieForm(form)
	if len(errs) > 0 {
		renderMovieForm(w, editTmpl, http.StatusUnprocessableEntity, movieFormData{
			CurrentUser: principal,
			Errors:      errs,
			Data:        form,
			MovieID:     id,
		})
		return
	}

	movie := loadOwnedMovie(w, r, principal)
	if movie == nil {
		return
	}

	if url, ok := uploadPoster(w, r); ok {
		if url != "" {
			in.PosterURL = url
		}
	} else {
		return
	}

	if err := services.UpdateMovie(movie.ID, in); err != nil {
		slog.Error("Error updating movie", "error", err, "movie_id", movie.ID)
		serverError(w)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/movies/%d", movie.ID), http.StatusSeeOther)
}

func DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r)

	movie := loadOwnedMovie(w, r, principal)
	if movie == nil {
		return
	}

	if err := services.DeleteMovie(movie.ID); err != nil {
		slog.Error("Error deleting movie", "error", err, "movie_id", movie.ID)
		serverError(w)
		return
	}

	slog.Info("Movie deleted", "movie_id", movie.ID, "owner_id", principal.ID)
	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

// LikeMovieHandler increments the like counter. Any authenticated user may
// like any movie, repeatedly; there is no ownership check and no dedup.
func LikeMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if err := services.LikeMovie(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		slog.Error("Error liking movie", "error", err, "movie_id", id)
		serverError(w)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/movies/%d", id), http.StatusSeeOther)
}

// CommentMovieHandler appends a comment authored by the session principal.
// Like likes, commenting is open to any authenticated user.
func CommentMovieHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r)

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	text := r.FormValue("comment")
	if text == "" {
		http.Redirect(w, r, fmt.Sprintf("/movies/%d", id), http.StatusSeeOther)
		return
	}

	if err := services.AddComment(id, principal.Username, text); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		slog.Error("Error adding comment", "error", err, "movie_id", id)
		serverError(w)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/movies/%d", id), http.StatusSeeOther)
}

// CommentRedirectHandler sends stray GETs on the comment URL back to the
// detail page.
func CommentRedirectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/movies/%d", id), http.StatusSeeOther)
}

// loadOwnedMovie resolves {id}, loads the movie and enforces ownership.
// Writes 404/403/500 and returns nil when the caller should stop.
func loadOwnedMovie(w http.ResponseWriter, r *http.Request, principal *models.Principal) *models.Movie {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return nil
	}

	movie, err := services.GetMovieByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return nil
		}
		slog.Error("Error getting movie", "error", err, "movie_id", id)
		serverError(w)
		return nil
	}

	if err := services.AuthorizeOwner(movie, principal.ID); err != nil {
		slog.Warn("Ownership check failed", "movie_id", id, "user_id", principal.ID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}

	return movie
}

func movieFormFromRequest(r *http.Request) services.MovieForm {
	return services.MovieForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Year:        r.FormValue("year"),
		Genres:      r.FormValue("genres"),
		Rating:      r.FormValue("rating"),
		PosterURL:   r.FormValue("posterUrl"),
	}
}

// uploadPoster stores an uploaded poster file when object storage is
// configured. Returns ("", true) when no file was submitted; (url, true) on a
// stored upload; ("", false) after writing an error response.
func uploadPoster(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !services.PosterUploadsEnabled() {
		return "", true
	}

	file, header, err := r.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		// Non-multipart form, nothing to upload
		return "", true
	}
	defer file.Close()

	url, err := services.UploadPoster(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("Error uploading poster", "error", err)
		serverError(w)
		return "", false
	}
	return url, true
}

func renderMovieForm(w http.ResponseWriter, tmpl *template.Template, status int, data movieFormData) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering movie form template", "error", err)
	}
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
