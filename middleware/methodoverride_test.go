package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   string
	}{
		{
			name:   "query override to PUT",
			method: "POST",
			target: "/movies/1?_method=PUT",
			want:   "PUT",
		},
		{
			name:   "form field override to DELETE",
			method: "POST",
			target: "/movies/1",
			body:   "_method=DELETE",
			want:   "DELETE",
		},
		{
			name:   "lowercase override",
			method: "POST",
			target: "/movies/1?_method=delete",
			want:   "DELETE",
		},
		{
			name:   "plain POST untouched",
			method: "POST",
			target: "/movies/1/like",
			want:   "POST",
		},
		{
			name:   "GET never overridden",
			method: "GET",
			target: "/movies/1?_method=DELETE",
			want:   "GET",
		},
		{
			name:   "unknown override ignored",
			method: "POST",
			target: "/movies/1?_method=PATCH",
			want:   "POST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Method
			}))

			r := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.body != "" {
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			handler.ServeHTTP(httptest.NewRecorder(), r)

			if seen != tt.want {
				t.Errorf("method seen by handler = %q, want %q", seen, tt.want)
			}
		})
	}
}
