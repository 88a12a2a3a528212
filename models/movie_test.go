package models

import (
	"reflect"
	"testing"
)

func TestGenreList(t *testing.T) {
	m := Movie{Genres: "Action, Sci-Fi, Drama"}
	want := []string{"Action", "Sci-Fi", "Drama"}
	if got := m.GenreList(); !reflect.DeepEqual(got, want) {
		t.Errorf("GenreList() = %v, want %v", got, want)
	}

	empty := Movie{}
	if got := empty.GenreList(); got != nil {
		t.Errorf("GenreList() on empty genres = %v, want nil", got)
	}
}
