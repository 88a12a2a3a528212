package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"Cinelog/models"
	"Cinelog/services"

	"github.com/go-chi/chi/v5"
)

func GetFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pages": func(total int) []int {
			pages := make([]int, total)
			for i := range pages {
				pages[i] = i + 1
			}
			return pages
		},
		"join": strings.Join,
		"rating": func(r *float64) string {
			if r == nil {
				return "Not rated"
			}
			return strconv.FormatFloat(*r, 'f', -1, 64)
		},
	}
}

// LoadTemplate loads a page template with the base layout and function map
func LoadTemplate(name string, pageTemplate string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(GetFuncMap()).ParseFiles(
		"templates/layouts/base.html",
		"templates/components/navigation.html",
		pageTemplate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return tmpl, nil
}

func mustLoadTemplate(name string, pageTemplate string) *template.Template {
	tmpl, err := LoadTemplate(name, pageTemplate)
	if err != nil {
		log.Fatal("Failed to parse template:", err)
	}
	return tmpl
}

// GetCurrentUser resolves the session principal for public pages, where
// RequireAuth has not run. Returns nil when nobody is logged in.
func GetCurrentUser(r *http.Request) *models.Principal {
	session, err := services.GetSession(r)
	if err != nil {
		return nil
	}

	userID, ok := session.Values["user_id"].(int64)
	if !ok {
		return nil
	}
	username, _ := session.Values["username"].(string)

	return &models.Principal{ID: userID, Username: username}
}

// SetupUserSession creates a session for a user after login/registration
func SetupUserSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, err := services.GetSession(r)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username

	if err := services.SaveSession(w, r, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// parseIDParam extracts the {id} URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}

func serverError(w http.ResponseWriter) {
	http.Error(w, "Server error", http.StatusInternalServerError)
}
