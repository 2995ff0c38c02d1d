package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link,
	website_link, seeking_venue, seeking_description, created_at, updated_at`

// VenueShow is a show as listed on an artist page.
type VenueShow struct {
	VenueID        uint64    `db:"venue_id" json:"venue_id"`
	VenueName      string    `db:"venue_name" json:"venue_name"`
	VenueImageLink string    `db:"venue_image_link" json:"venue_image_link"`
	StartTime      time.Time `db:"start_time" json:"start_time"`
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	model.Artist
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ArtistRepo provides access to the artists table.
type ArtistRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sqlx.DB, opts ...Option) *ArtistRepo {
	o := buildOptions(opts)
	return &ArtistRepo{db: db, now: o.now}
}

const artistSummarySelect = `SELECT a.id, a.name,
	       (SELECT COUNT(*) FROM shows s
	         WHERE s.artist_id = a.id AND s.start_time > ?) AS num_upcoming_shows
	FROM artists a `

// List returns every artist ordered by id.
func (r *ArtistRepo) List(ctx context.Context) ([]EntitySummary, error) {
	out := []EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, artistSummarySelect+`ORDER BY a.id`, upcomingCutoff(r.now())); err != nil {
		return nil, fmt.Errorf("could not list artists: %w", err)
	}
	return out, nil
}

// Search performs a case-insensitive substring match on artist names.
func (r *ArtistRepo) Search(ctx context.Context, keyword string) (SearchResult, error) {
	data := []EntitySummary{}
	q := artistSummarySelect + `WHERE LOWER(a.name) LIKE ? ESCAPE '!' ORDER BY a.id`
	if err := r.db.SelectContext(ctx, &data, q, upcomingCutoff(r.now()), containsPattern(keyword)); err != nil {
		return SearchResult{}, fmt.Errorf("could not search artists: %w", err)
	}
	return SearchResult{Count: len(data), Data: data}, nil
}

// ListRecent returns the most recently listed artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int) ([]EntitySummary, error) {
	out := []EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, artistSummarySelect+`ORDER BY a.id DESC LIMIT ?`, upcomingCutoff(r.now()), limit); err != nil {
		return nil, fmt.Errorf("could not list recent artists: %w", err)
	}
	return out, nil
}

// GetByID fetches an artist by ID, returning ErrArtistNotFound when
// the row does not exist.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return getArtist(ctx, r.db, id)
}

// GetDetail loads the artist page with the artist's shows split into
// past and upcoming at the current time.
func (r *ArtistRepo) GetDetail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	a, err := getArtist(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	const q = `SELECT v.id AS venue_id, v.name AS venue_name, v.image_link AS venue_image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time, s.id`
	var shows []VenueShow
	if err := r.db.SelectContext(ctx, &shows, q, id); err != nil {
		return nil, fmt.Errorf("could not load artist shows: %w", err)
	}
	past, upcoming := splitShows(shows, func(s VenueShow) time.Time { return s.StartTime }, r.now())

	return &ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create inserts a new artist and reloads the stored row into a.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
		                                website_link, seeking_venue, seeking_description)
		           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink,
			a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		stored, err := getArtist(ctx, tx, uint64(id))
		if err != nil {
			return err
		}
		*a = *stored
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not create artist: %w", err)
	}
	return nil
}

// Update overwrites the artist identified by a.ID.  Failures are
// returned to the caller, never swallowed.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := getArtist(ctx, tx, a.ID); err != nil {
			return err
		}
		const q = `UPDATE artists
		           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
		               facebook_link = ?, website_link = ?, seeking_venue = ?,
		               seeking_description = ?, updated_at = CURRENT_TIMESTAMP
		           WHERE id = ?`
		if _, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink,
			a.FacebookLink, a.WebsiteLink, a.SeekingVenue,
			a.SeekingDescription, a.ID); err != nil {
			return err
		}
		stored, err := getArtist(ctx, tx, a.ID)
		if err != nil {
			return err
		}
		*a = *stored
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrArtistNotFound) {
			return err
		}
		return fmt.Errorf("could not update artist %d: %w", a.ID, err)
	}
	return nil
}

// Delete removes an artist together with its shows.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrArtistNotFound) {
			return err
		}
		return fmt.Errorf("could not delete artist %d: %w", id, err)
	}
	return nil
}

func getArtist(ctx context.Context, q sqlx.QueryerContext, id uint64) (*model.Artist, error) {
	var a model.Artist
	if err := sqlx.GetContext(ctx, q, &a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}
