package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// testNow is the fixed clock used by every repository test.
var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

type fixture struct {
	db      *sqlx.DB
	venues  *VenueRepo
	artists *ArtistRepo
	shows   *ShowRepo
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:      db,
		venues:  NewVenueRepo(db, WithClock(fixedClock)),
		artists: NewArtistRepo(db, WithClock(fixedClock)),
		shows:   NewShowRepo(db),
	}
}

func (f *fixture) venue(t *testing.T, name, city, state string) *model.Venue {
	t.Helper()
	v := &model.Venue{Name: name, City: city, State: state, Genres: model.Genres{"Jazz"}}
	require.NoError(t, f.venues.Create(context.Background(), v))
	return v
}

func (f *fixture) artist(t *testing.T, name string) *model.Artist {
	t.Helper()
	a := &model.Artist{Name: name, City: "San Francisco", State: "CA", Genres: model.Genres{"Rock n Roll"}}
	require.NoError(t, f.artists.Create(context.Background(), a))
	return a
}

func (f *fixture) show(t *testing.T, a *model.Artist, v *model.Venue, start time.Time) *model.Show {
	t.Helper()
	s := &model.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: start}
	require.NoError(t, f.shows.Create(context.Background(), s))
	return s
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

// failInserts makes every insert into table abort.
func (f *fixture) failInserts(t *testing.T, table string) {
	t.Helper()
	_, err := f.db.Exec(`CREATE TRIGGER fail_` + table + `_insert BEFORE INSERT ON ` + table +
		` BEGIN SELECT RAISE(ABORT, 'insert disabled'); END`)
	require.NoError(t, err)
}

func TestContainsPattern(t *testing.T) {
	cases := map[string]string{
		"":       "%%",
		"  Hop ": "%hop%",
		"100%":   "%100!%%",
		"a_b":    "%a!_b%",
		"wow!":   "%wow!!%",
		"MUSIC":  "%music%",
	}
	for in, want := range cases {
		require.Equal(t, want, containsPattern(in), in)
	}
}
