package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"Cinelog/models"
	"Cinelog/services"
)

var loginTmpl *template.Template
var registerTmpl *template.Template

func init() {
	loginTmpl = mustLoadTemplate("login", "templates/pages/login.html")
	registerTmpl = mustLoadTemplate("register", "templates/pages/register.html")
}

type authFormData struct {
	CurrentUser *models.Principal
	Errors      models.ValidationErrors
	Data        map[string]string
}

func ShowRegisterHandler(w http.ResponseWriter, r *http.Request) {
	renderAuthForm(w, registerTmpl, http.StatusOK, authFormData{
		CurrentUser: GetCurrentUser(r),
		Data:        map[string]string{},
	})
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	data := authFormData{
		CurrentUser: GetCurrentUser(r),
		Data:        map[string]string{"username": username, "email": email},
	}

	errs := services.ValidateRegistration(username, email, password, confirm)
	if len(errs) == 0 {
		taken, err := services.EmailRegistered(email)
		if err != nil {
			slog.Error("Failed to check email", "error", err)
			serverError(w)
			return
		}
		if taken {
			errs = append(errs, models.FieldError{Field: "email", Message: "Email already in use"})
		}
	}
	if len(errs) > 0 {
		data.Errors = errs
		renderAuthForm(w, registerTmpl, http.StatusUnprocessableEntity, data)
		return
	}

	user, err := services.RegisterUser(username, email, password)
	if err != nil {
		slog.Error("Registration failed", "username", username, "error", err)
		serverError(w)
		return
	}

	slog.Info("User registered", "username", username, "user_id", user.ID)

	// Automatically log in after registration
	if err := SetupUserSession(w, r, user); err != nil {
		slog.Error("Failed to setup session", "username", username, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

func ShowLoginHandler(w http.ResponseWriter, r *http.Request) {
	renderAuthForm(w, loginTmpl, http.StatusOK, authFormData{
		CurrentUser: GetCurrentUser(r),
		Data:        map[string]string{},
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	data := authFormData{
		CurrentUser: GetCurrentUser(r),
		Data:        map[string]string{"email": email},
	}

	if errs := services.ValidateLogin(email, password); len(errs) > 0 {
		data.Errors = errs
		renderAuthForm(w, loginTmpl, http.StatusUnprocessableEntity, data)
		return
	}

	user, err := services.AuthenticateUser(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password
			slog.Warn("Login failed", "email", email)
			data.Errors = models.ValidationErrors{{Field: "credentials", Message: "Invalid credentials"}}
			renderAuthForm(w, loginTmpl, http.StatusUnauthorized, data)
			return
		}
		slog.Error("Login error", "error", err)
		serverError(w)
		return
	}

	if err := SetupUserSession(w, r, user); err != nil {
		slog.Error("Failed to setup session", "email", email, "error", err)
		serverError(w)
		return
	}

	slog.Info("User logged in", "username", user.Username, "user_id", user.ID)
	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, err := services.GetSession(r)
	if err == nil {
		session.Values = make(map[interface{}]interface{})
		session.Options.MaxAge = -1
		if err := services.SaveSession(w, r, session); err != nil {
			slog.Error("Failed to destroy session", "error", err)
		}
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func renderAuthForm(w http.ResponseWriter, tmpl *template.Template, status int, data authFormData) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering auth template", "error", err)
	}
}
