package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride lets HTML forms reach PUT and DELETE routes. Forms submit a
// POST with either a ?_method= query parameter or a hidden _method field, and
// the request method is rewritten before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.URL.Query().Get("_method")
			if override == "" {
				override = r.PostFormValue("_method")
			}
			switch strings.ToUpper(override) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
