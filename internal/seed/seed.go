// Package seed loads sample venues, artists and shows from a YAML
// fixture file into an empty database.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// ErrAlreadySeeded is returned by Load when venues already exist.
var ErrAlreadySeeded = errors.New("database already contains venues")

// Fixtures is the decoded fixture file.
type Fixtures struct {
	Venues  []VenueFixture  `yaml:"venues"`
	Artists []ArtistFixture `yaml:"artists"`
	Shows   []ShowFixture   `yaml:"shows"`
}

type VenueFixture struct {
	Name               string   `yaml:"name"`
	Genres             []string `yaml:"genres"`
	Address            string   `yaml:"address"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	WebsiteLink        string   `yaml:"website_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	SeekingTalent      bool     `yaml:"seeking_talent"`
	SeekingDescription string   `yaml:"seeking_description"`
	ImageLink          string   `yaml:"image_link"`
}

type ArtistFixture struct {
	Name               string   `yaml:"name"`
	Genres             []string `yaml:"genres"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	WebsiteLink        string   `yaml:"website_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	SeekingVenue       bool     `yaml:"seeking_venue"`
	SeekingDescription string   `yaml:"seeking_description"`
	ImageLink          string   `yaml:"image_link"`
}

// ShowFixture names its venue and artist instead of using ids, which
// are only known once the parents are inserted.
type ShowFixture struct {
	Venue     string    `yaml:"venue"`
	Artist    string    `yaml:"artist"`
	StartTime time.Time `yaml:"start_time"`
}

// Parse decodes a fixture document.
func Parse(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("could not parse fixtures: %w", err)
	}
	return fx, nil
}

// Default returns the embedded sample fixtures.
func Default() (Fixtures, error) {
	return Parse(defaultFixtures)
}

// Result counts what Load inserted.
type Result struct {
	Venues  int
	Artists int
	Shows   int
}

// Loader inserts fixtures through the repositories, so every row goes
// through the same code path as a form submission.
type Loader struct {
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
}

func NewLoader(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo) *Loader {
	return &Loader{venues: venues, artists: artists, shows: shows}
}

// Load inserts fx into an empty database.  It refuses to run when any
// venue exists so repeated runs do not duplicate listings.
//
// Show references are resolved before anything is written.  If an
// insert fails part way, the venues and artists already created are
// deleted again (their shows go with them through the cascade), so a
// failed run leaves the database empty and can simply be retried.
func (l *Loader) Load(ctx context.Context, fx Fixtures) (Result, error) {
	if err := checkReferences(fx); err != nil {
		return Result{}, err
	}
	existing, err := l.venues.Search(ctx, "")
	if err != nil {
		return Result{}, err
	}
	if existing.Count > 0 {
		return Result{}, ErrAlreadySeeded
	}

	res, created, err := l.insert(ctx, fx)
	if err != nil {
		if undoErr := l.undo(ctx, created); undoErr != nil {
			return res, errors.Join(err, undoErr)
		}
		return Result{}, err
	}
	return res, nil
}

// inserted records the rows written by a Load so they can be removed.
type inserted struct {
	venues  []uint64
	artists []uint64
}

func (l *Loader) insert(ctx context.Context, fx Fixtures) (Result, inserted, error) {
	var (
		res     Result
		created inserted
	)
	venueIDs := make(map[string]uint64, len(fx.Venues))
	for _, f := range fx.Venues {
		v := &model.Venue{
			Name:               f.Name,
			City:               f.City,
			State:              f.State,
			Address:            f.Address,
			Phone:              f.Phone,
			ImageLink:          f.ImageLink,
			FacebookLink:       f.FacebookLink,
			WebsiteLink:        f.WebsiteLink,
			Genres:             model.Genres(f.Genres),
			SeekingTalent:      f.SeekingTalent,
			SeekingDescription: f.SeekingDescription,
		}
		if err := l.venues.Create(ctx, v); err != nil {
			return res, created, err
		}
		venueIDs[v.Name] = v.ID
		created.venues = append(created.venues, v.ID)
		res.Venues++
	}

	artistIDs := make(map[string]uint64, len(fx.Artists))
	for _, f := range fx.Artists {
		a := &model.Artist{
			Name:               f.Name,
			City:               f.City,
			State:              f.State,
			Phone:              f.Phone,
			Genres:             model.Genres(f.Genres),
			ImageLink:          f.ImageLink,
			FacebookLink:       f.FacebookLink,
			WebsiteLink:        f.WebsiteLink,
			SeekingVenue:       f.SeekingVenue,
			SeekingDescription: f.SeekingDescription,
		}
		if err := l.artists.Create(ctx, a); err != nil {
			return res, created, err
		}
		artistIDs[a.Name] = a.ID
		created.artists = append(created.artists, a.ID)
		res.Artists++
	}

	for i, f := range fx.Shows {
		s := &model.Show{ArtistID: artistIDs[f.Artist], VenueID: venueIDs[f.Venue], StartTime: f.StartTime}
		if err := l.shows.Create(ctx, s); err != nil {
			return res, created, fmt.Errorf("show %d: %w", i, err)
		}
		res.Shows++
	}
	return res, created, nil
}

// undo deletes the venues and artists of a failed load.
func (l *Loader) undo(ctx context.Context, created inserted) error {
	var errs []error
	for _, id := range created.venues {
		if err := l.venues.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range created.artists {
		if err := l.artists.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkReferences verifies that every show names a venue and an artist
// defined in the same fixture set.
func checkReferences(fx Fixtures) error {
	venues := make(map[string]bool, len(fx.Venues))
	for _, v := range fx.Venues {
		venues[v.Name] = true
	}
	artists := make(map[string]bool, len(fx.Artists))
	for _, a := range fx.Artists {
		artists[a.Name] = true
	}
	for i, s := range fx.Shows {
		if !venues[s.Venue] {
			return fmt.Errorf("show %d: unknown venue %q", i, s.Venue)
		}
		if !artists[s.Artist] {
			return fmt.Errorf("show %d: unknown artist %q", i, s.Artist)
		}
	}
	return nil
}
