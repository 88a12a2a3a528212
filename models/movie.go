package models

import (
	"strings"
	"time"
)

type Movie struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	Genres      string    `json:"genres"` // comma-joined, order preserved
	Rating      *float64  `json:"rating"` // nil when not rated
	PosterURL   string    `json:"poster_url"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Likes       int       `json:"likes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Comment struct {
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"postedAt"`
}

// GenreList splits the stored comma-joined genres back into the ordered list.
func (m *Movie) GenreList() []string {
	if m.Genres == "" {
		return nil
	}
	return strings.Split(m.Genres, ", ")
}
