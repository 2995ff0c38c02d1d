// Package repository contains data access logic separated from HTTP handlers.
// This file defines the venue repository: the location-grouped list page,
// the name search, the detail page with its past/upcoming shows, and the
// create/update/delete mutations. Every mutation runs in its own
// transaction and either commits or leaves the tables untouched.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website_link, genres, seeking_talent, seeking_description, created_at, updated_at`

// VenueArea groups the venues sharing a (city, state) pair.
type VenueArea struct {
	City   string          `json:"city"`
	State  string          `json:"state"`
	Venues []EntitySummary `json:"venues"`
}

// ArtistShow is a show as listed on a venue page.
type ArtistShow struct {
	ArtistID        uint64    `db:"artist_id" json:"artist_id"`
	ArtistName      string    `db:"artist_name" json:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link" json:"artist_image_link"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
}

// VenueDetail is the venue page: every venue attribute plus its shows
// split around the time of the request.
type VenueDetail struct {
	model.Venue
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sqlx.DB handle which is opened once at startup.
type VenueRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB, opts ...Option) *VenueRepo {
	o := buildOptions(opts)
	return &VenueRepo{db: db, now: o.now}
}

type locatedSummary struct {
	EntitySummary
	City  string `db:"city"`
	State string `db:"state"`
}

// ListGroupedByLocation returns every venue grouped by (city, state)
// with its number of upcoming shows.  Areas are ordered by city then
// state and venues by id, which keeps pages stable between requests.
func (r *VenueRepo) ListGroupedByLocation(ctx context.Context) ([]VenueArea, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
	                  (SELECT COUNT(*) FROM shows s
	                    WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows
	           FROM venues v
	           ORDER BY v.city, v.state, v.id`
	var rows []locatedSummary
	if err := r.db.SelectContext(ctx, &rows, q, upcomingCutoff(r.now())); err != nil {
		return nil, fmt.Errorf("could not list venues: %w", err)
	}

	type location struct{ city, state string }
	groups := lo.PartitionBy(rows, func(v locatedSummary) location {
		return location{v.City, v.State}
	})
	areas := make([]VenueArea, 0, len(groups))
	for _, g := range groups {
		areas = append(areas, VenueArea{
			City:  g[0].City,
			State: g[0].State,
			Venues: lo.Map(g, func(v locatedSummary, _ int) EntitySummary {
				return v.EntitySummary
			}),
		})
	}
	return areas, nil
}

// Search performs a case-insensitive substring match on venue names.
// An empty keyword matches every venue.
func (r *VenueRepo) Search(ctx context.Context, keyword string) (SearchResult, error) {
	const q = `SELECT v.id, v.name,
	                  (SELECT COUNT(*) FROM shows s
	                    WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows
	           FROM venues v
	           WHERE LOWER(v.name) LIKE ? ESCAPE '!'
	           ORDER BY v.id`
	data := []EntitySummary{}
	if err := r.db.SelectContext(ctx, &data, q, upcomingCutoff(r.now()), containsPattern(keyword)); err != nil {
		return SearchResult{}, fmt.Errorf("could not search venues: %w", err)
	}
	return SearchResult{Count: len(data), Data: data}, nil
}

// ListRecent returns the most recently listed venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]EntitySummary, error) {
	const q = `SELECT v.id, v.name,
	                  (SELECT COUNT(*) FROM shows s
	                    WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows
	           FROM venues v
	           ORDER BY v.id DESC
	           LIMIT ?`
	out := []EntitySummary{}
	if err := r.db.SelectContext(ctx, &out, q, upcomingCutoff(r.now()), limit); err != nil {
		return nil, fmt.Errorf("could not list recent venues: %w", err)
	}
	return out, nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if
// no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return getVenue(ctx, r.db, id)
}

// GetDetail loads the venue page.  The venue's shows are read in start
// order and split with model.Partition at the repository clock: past
// shows started strictly before now, upcoming shows start strictly
// after it.
func (r *VenueRepo) GetDetail(ctx context.Context, id uint64) (*VenueDetail, error) {
	v, err := getVenue(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	const q = `SELECT a.id AS artist_id, a.name AS artist_name, a.image_link AS artist_image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time, s.id`
	var shows []ArtistShow
	if err := r.db.SelectContext(ctx, &shows, q, id); err != nil {
		return nil, fmt.Errorf("could not load venue shows: %w", err)
	}
	past, upcoming := splitShows(shows, func(s ArtistShow) time.Time { return s.StartTime }, r.now())

	return &VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create inserts a new venue.  On success the venue's ID and timestamp
// fields are populated from the stored row.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
		                               website_link, genres, seeking_talent, seeking_description)
		           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
			v.WebsiteLink, v.Genres, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		stored, err := getVenue(ctx, tx, uint64(id))
		if err != nil {
			return err
		}
		*v = *stored
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not create venue: %w", err)
	}
	return nil
}

// Update overwrites every mutable attribute of the venue identified by
// v.ID.  It returns ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := getVenue(ctx, tx, v.ID); err != nil {
			return err
		}
		const q = `UPDATE venues
		           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
		               facebook_link = ?, website_link = ?, genres = ?, seeking_talent = ?,
		               seeking_description = ?, updated_at = CURRENT_TIMESTAMP
		           WHERE id = ?`
		if _, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.FacebookLink, v.WebsiteLink, v.Genres, v.SeekingTalent,
			v.SeekingDescription, v.ID); err != nil {
			return err
		}
		stored, err := getVenue(ctx, tx, v.ID)
		if err != nil {
			return err
		}
		*v = *stored
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return err
		}
		return fmt.Errorf("could not update venue %d: %w", v.ID, err)
	}
	return nil
}

// Delete removes a venue; its shows go with it through the foreign key
// cascade.  It returns ErrVenueNotFound when nothing was deleted.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return err
		}
		return fmt.Errorf("could not delete venue %d: %w", id, err)
	}
	return nil
}

func getVenue(ctx context.Context, q sqlx.QueryerContext, id uint64) (*model.Venue, error) {
	var v model.Venue
	if err := sqlx.GetContext(ctx, q, &v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}
