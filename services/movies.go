package services

import (
	"Cinelog/database"
	"Cinelog/models"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PageSize is the fixed number of movies per listing page.
const PageSize = 6

const (
	SortYearDesc   = "year"
	SortRatingDesc = "rating"
)

type ListParams struct {
	Search string
	Sort   string
	Page   int // 1-indexed
}

// MovieInput carries validated fields for create/update. OwnerID is never part
// of it; ownership is fixed at creation from the session principal.
type MovieInput struct {
	Name        string
	Description string
	Year        int
	Genres      []string
	Rating      *float64
	PosterURL   string
}

// ParseGenres turns a comma-separated field into the ordered genre list:
// entries trimmed, empty segments dropped, duplicates preserved as given.
func ParseGenres(raw string) []string {
	var genres []string
	for _, g := range strings.Split(raw, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// TotalPages returns ceil(count / PageSize).
func TotalPages(count int) int {
	return (count + PageSize - 1) / PageSize
}

// escapeLike neutralizes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

const movieColumns = `m.id, m.name, m.description, m.year, m.genres, m.rating, m.poster_url,
	m.owner_id, u.username, m.likes, m.comments, m.created_at, m.updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*models.Movie, error) {
	var m models.Movie
	var rating sql.NullFloat64
	var commentsJSON []byte

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Year,
		&m.Genres,
		&rating,
		&m.PosterURL,
		&m.OwnerID,
		&m.OwnerName,
		&m.Likes,
		&commentsJSON,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		m.Rating = &rating.Float64
	}
	if err := json.Unmarshal(commentsJSON, &m.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments for movie %d: %w", m.ID, err)
	}
	return &m, nil
}

// ListMovies returns one page of the public listing plus the total page count.
// Pages past the end yield an empty slice, not an error.
func ListMovies(p ListParams) ([]models.Movie, int, error) {
	where := ""
	args := []any{}
	if strings.TrimSpace(p.Search) != "" {
		where = "WHERE m.name ILIKE $1"
		args = append(args, "%"+escapeLike(strings.TrimSpace(p.Search))+"%")
	}

	var count int
	countQuery := "SELECT COUNT(*) FROM movies m " + where
	if err := database.DB.QueryRow(countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	order := "ORDER BY m.id ASC"
	switch p.Sort {
	case SortYearDesc:
		order = "ORDER BY m.year DESC, m.id ASC"
	case SortRatingDesc:
		order = "ORDER BY m.rating DESC NULLS LAST, m.id ASC"
	}

	page := p.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(
		"SELECT %s FROM movies m JOIN users u ON u.id = m.owner_id %s %s LIMIT $%d OFFSET $%d",
		movieColumns, where, order, len(args)+1, len(args)+2,
	)
	args = append(args, PageSize, (page-1)*PageSize)

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return movies, TotalPages(count), nil
}

func GetMovieByID(id int64) (*models.Movie, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM movies m JOIN users u ON u.id = m.owner_id WHERE m.id = $1",
		movieColumns,
	)
	m, err := scanMovie(database.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return m, nil
}

func GetMoviesByOwner(ownerID int64) ([]models.Movie, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM movies m JOIN users u ON u.id = m.owner_id WHERE m.owner_id = $1 ORDER BY m.created_at DESC",
		movieColumns,
	)
	rows, err := database.DB.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

func CreateMovie(ownerID int64, in MovieInput) (*models.Movie, error) {
	var id int64
	err := database.DB.QueryRow(`
		INSERT INTO movies (name, description, year, genres, rating, poster_url, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		in.Name, in.Description, in.Year, strings.Join(in.Genres, ", "),
		ratingArg(in.Rating), in.PosterURL, ownerID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	return GetMovieByID(id)
}

// UpdateMovie rewrites the core fields. owner_id is deliberately absent from
// the statement; ownership never changes after creation.
func UpdateMovie(id int64, in MovieInput) error {
	result, err := database.DB.Exec(`
		UPDATE movies SET
			name = $2,
			description = $3,
			year = $4,
			genres = $5,
			rating = $6,
			poster_url = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`,
		id, in.Name, in.Description, in.Year, strings.Join(in.Genres, ", "),
		ratingArg(in.Rating), in.PosterURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	return requireRow(result)
}

func DeleteMovie(id int64) error {
	result, err := database.DB.Exec("DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return requireRow(result)
}

// LikeMovie increments the counter by one in a single statement. There is no
// per-user dedup; the same user may like a movie any number of times.
func LikeMovie(id int64) error {
	result, err := database.DB.Exec("UPDATE movies SET likes = likes + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to like movie: %w", err)
	}
	return requireRow(result)
}

// AddComment appends to the comments array in a single statement, so a
// completed append is never lost under concurrent comments.
func AddComment(id int64, author, text string) error {
	payload, err := json.Marshal(models.Comment{
		Author:   author,
		Text:     text,
		PostedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode comment: %w", err)
	}

	result, err := database.DB.Exec(
		"UPDATE movies SET comments = comments || $2::jsonb WHERE id = $1",
		id, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return requireRow(result)
}

// AuthorizeOwner allows the mutation only when the user owns the movie.
func AuthorizeOwner(movie *models.Movie, userID int64) error {
	if movie == nil {
		return ErrNotFound
	}
	if movie.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

func ratingArg(rating *float64) any {
	if rating == nil {
		return nil
	}
	return *rating
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
