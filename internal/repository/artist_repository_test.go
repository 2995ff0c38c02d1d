package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

func TestArtistCreateAndGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := &model.Artist{
		Name:               "The Wild Sax Band",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "432-325-5432",
		Genres:             model.Genres{"Jazz", "Classical"},
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}
	require.NoError(t, f.artists.Create(ctx, a))
	assert.NotZero(t, a.ID)

	got, err := f.artists.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Genres{"Jazz", "Classical"}, got.Genres)
	assert.True(t, got.SeekingVenue)
	assert.Equal(t, "432-325-5432", got.Phone)
}

func TestArtistCreateFailureLeavesNoRow(t *testing.T) {
	f := newFixture(t)
	f.failInserts(t, "artists")

	err := f.artists.Create(context.Background(), &model.Artist{Name: "Matt Quevedo"})
	require.Error(t, err)
	assert.Equal(t, 0, f.count(t, "artists"))
}

func TestArtistListAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	petals := f.artist(t, "Guns N Petals")
	quevedo := f.artist(t, "Matt Quevedo")
	sax := f.artist(t, "The Wild Sax Band")
	v := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	f.show(t, sax, v, testNow.Add(time.Hour))

	all, err := f.artists.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []EntitySummary{
		{ID: petals.ID, Name: petals.Name},
		{ID: quevedo.ID, Name: quevedo.Name},
		{ID: sax.ID, Name: sax.Name, NumUpcomingShows: 1},
	}, all)

	res, err := f.artists.Search(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	res, err = f.artists.Search(ctx, "band")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, sax.ID, res.Data[0].ID)
	assert.Equal(t, 1, res.Data[0].NumUpcomingShows)

	res, err = f.artists.Search(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Data)
}

func TestArtistGetDetail(t *testing.T) {
	f := newFixture(t)
	a := f.artist(t, "Guns N Petals")
	hop := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	park := f.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	f.show(t, a, hop, testNow.Add(-72*time.Hour))
	f.show(t, a, park, testNow.Add(72*time.Hour))
	f.show(t, a, park, testNow.Add(24*time.Hour))

	d, err := f.artists.GetDetail(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, 2, d.UpcomingShowsCount)
	assert.Equal(t, hop.ID, d.PastShows[0].VenueID)
	assert.Equal(t, "The Musical Hop", d.PastShows[0].VenueName)
	assert.True(t, d.UpcomingShows[0].StartTime.Equal(testNow.Add(24*time.Hour)))
	assert.True(t, d.UpcomingShows[1].StartTime.Equal(testNow.Add(72*time.Hour)))

	_, err = f.artists.GetDetail(context.Background(), a.ID+100)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistUpdateIsVisible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.artist(t, "Matt Quevedo")

	a.Name = "Matt Quevedo Trio"
	a.City = "New York"
	a.State = "NY"
	a.Genres = model.Genres{"Jazz"}
	a.SeekingVenue = true
	require.NoError(t, f.artists.Update(ctx, a))

	d, err := f.artists.GetDetail(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matt Quevedo Trio", d.Name)
	assert.Equal(t, "New York", d.City)
	assert.Equal(t, model.Genres{"Jazz"}, d.Genres)
	assert.True(t, d.SeekingVenue)

	err = f.artists.Update(ctx, &model.Artist{ID: a.ID + 1, Name: "ghost"})
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteCascadesShows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.artist(t, "Guns N Petals")
	v := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	f.show(t, a, v, testNow.Add(time.Hour))

	require.NoError(t, f.artists.Delete(ctx, a.ID))
	assert.Equal(t, 0, f.count(t, "shows"))
	assert.Equal(t, 1, f.count(t, "venues"))
	assert.ErrorIs(t, f.artists.Delete(ctx, a.ID), ErrArtistNotFound)
}

func TestArtistSearchFoldsNonASCII(t *testing.T) {
	f := newFixture(t)
	angela := f.artist(t, "ÁNGELA")
	f.artist(t, "Matt Quevedo")

	res, err := f.artists.Search(context.Background(), "ángela")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, angela.ID, res.Data[0].ID)
}

func TestArtistGetDetailSubSecondClock(t *testing.T) {
	db := newTestDB(t)
	now := testNow.Add(500 * time.Millisecond)
	artists := NewArtistRepo(db, WithClock(func() time.Time { return now }))
	f := &fixture{db: db, venues: NewVenueRepo(db), artists: artists, shows: NewShowRepo(db)}
	a := f.artist(t, "The Wild Sax Band")
	v := f.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	f.show(t, a, v, testNow)

	d, err := artists.GetDetail(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.PastShowsCount)
	assert.Zero(t, d.UpcomingShowsCount)
}
