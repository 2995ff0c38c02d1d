package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/errs"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

func showValues(artistID, venueID uint64, start string) url.Values {
	return url.Values{
		"artist_id":  {fmt.Sprint(artistID)},
		"venue_id":   {fmt.Sprint(venueID)},
		"start_time": {start},
	}
}

func TestCreateShowAndList(t *testing.T) {
	s := newTestServer(t)
	venueID, artistID := s.seed(t)

	rec := s.postForm("/shows/create", showValues(artistID, venueID, "2019-05-21 21:30:00"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Show was successfully listed!", decode[map[string]any](t, rec)["flash"])
	assert.Equal(t, []string{queue.KindVenue, queue.KindArtist, queue.KindShow}, s.pub.kinds())

	rec = s.get("/shows")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Shows []repository.ShowListing `json:"shows"`
	}](t, rec)
	require.Len(t, list.Shows, 1)
	assert.Equal(t, "The Musical Hop", list.Shows[0].VenueName)
	assert.Equal(t, "Guns N Petals", list.Shows[0].ArtistName)
	assert.True(t, list.Shows[0].StartTime.Equal(time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)))
}

func TestCreateShowUnknownReference(t *testing.T) {
	s := newTestServer(t)
	venueID, artistID := s.seed(t)

	rec := s.postForm("/shows/create", showValues(artistID, venueID+10, "2035-01-01T20:00:00Z"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "An error occurred. Show could not be listed.", decode[map[string]any](t, rec)["flash"])
	assert.Equal(t, 0, s.count(t, "shows"))
}

func TestCreateShowStorageFailure(t *testing.T) {
	s := newTestServer(t)
	venueID, artistID := s.seed(t)
	s.failInserts(t, "shows")

	rec := s.postForm("/shows/create", showValues(artistID, venueID, "2035-01-01T20:00:00Z"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An error occurred. Show could not be listed.", decode[map[string]any](t, rec)["flash"])
}

func TestCreateShowBadStartTime(t *testing.T) {
	s := newTestServer(t)
	venueID, artistID := s.seed(t)

	rec := s.postForm("/shows/create", showValues(artistID, venueID, "next tuesday"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "start_time", body.Errors[0].Field)

	rec = s.postForm("/shows/create", url.Values{"start_time": {"2035-01-01 20:00"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHome(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	rec := s.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Venues  []repository.EntitySummary `json:"recent_venues"`
		Artists []repository.EntitySummary `json:"recent_artists"`
	}](t, rec)
	assert.Len(t, body.Venues, 1)
	assert.Len(t, body.Artists, 1)
}
