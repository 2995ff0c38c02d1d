// Package repository contains data access logic for Show domain operations.
// A show books one artist at one venue at a given start time and is
// listed on the shows page together with its venue and artist names.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowListing is one row of the shows page.
type ShowListing struct {
	ID              uint64    `db:"id" json:"id"`
	VenueID         uint64    `db:"venue_id" json:"venue_id"`
	VenueName       string    `db:"venue_name" json:"venue_name"`
	ArtistID        uint64    `db:"artist_id" json:"artist_id"`
	ArtistName      string    `db:"artist_name" json:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link" json:"artist_image_link"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sqlx.DB
}

// NewShowRepo returns a new ShowRepo.
func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// List returns every show joined to its venue and artist, ordered by
// start time.
func (r *ShowRepo) List(ctx context.Context) ([]ShowListing, error) {
	const q = `SELECT s.id, s.venue_id, v.name AS venue_name, s.artist_id, a.name AS artist_name,
	                  a.image_link AS artist_image_link, s.start_time
	           FROM shows s
	           JOIN venues v  ON v.id = s.venue_id
	           JOIN artists a ON a.id = s.artist_id
	           ORDER BY s.start_time, s.id`
	out := []ShowListing{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("could not list shows: %w", err)
	}
	return out, nil
}

// Create books a show.  Both parents are checked inside the same
// transaction as the insert; a missing artist or venue yields
// ErrUnknownReference.  StartTime is normalised to UTC seconds before
// it is stored.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, ref := range []struct {
			table string
			id    uint64
		}{{"artists", s.ArtistID}, {"venues", s.VenueID}} {
			var n int
			if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+ref.table+` WHERE id = ?`, ref.id); err != nil {
				return err
			}
			if n == 0 {
				return ErrUnknownReference
			}
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`,
			s.ArtistID, s.VenueID, model.Normalize(s.StartTime))
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrUnknownReference
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, s,
			`SELECT id, artist_id, venue_id, start_time, created_at FROM shows WHERE id = ?`, id)
	})
	if err != nil {
		if errors.Is(err, ErrUnknownReference) {
			return err
		}
		return fmt.Errorf("could not create show: %w", err)
	}
	return nil
}

// splitShows buckets shows, already in start order, with model.Partition.
// A show starting exactly at now is in neither list.
func splitShows[T any](shows []T, startOf func(T) time.Time, now time.Time) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, s := range shows {
		switch model.Partition(startOf(s), now) {
		case model.Past:
			past = append(past, s)
		case model.Upcoming:
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}

// upcomingCutoff is the bound used by `start_time > ?` in the upcoming
// counts.  Stored start times are whole seconds, so start > now holds
// exactly when start > now truncated to the second, which keeps the
// counts in line with model.Partition.
func upcomingCutoff(now time.Time) time.Time {
	return model.Normalize(now)
}
