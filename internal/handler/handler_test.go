package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ListingCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishListingCreated(_ context.Context, ev queue.ListingCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

type testServer struct {
	e   *echo.Echo
	db  *sqlx.DB
	h   *BookingHandler
	pub *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	clock := func() time.Time { return testNow }
	pub := &recordingPublisher{}
	h := NewBookingHandler(
		repository.NewVenueRepo(db, repository.WithClock(clock)),
		repository.NewArtistRepo(db, repository.WithClock(clock)),
		repository.NewShowRepo(db),
		pub,
	)

	e := echo.New()
	e.HTTPErrorHandler = middleware.GlobalErrorHandler
	e.GET("/", h.Home)
	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.ShowVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)
	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist)
	e.DELETE("/artists/:id", h.DeleteArtist)
	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow)

	return &testServer{e: e, db: db, h: h, pub: pub}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req)
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.do(req)
}

func (s *testServer) delete(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodDelete, path, nil))
}

func (s *testServer) failInserts(t *testing.T, table string) {
	t.Helper()
	_, err := s.db.Exec(`CREATE TRIGGER fail_` + table + ` BEFORE INSERT ON ` + table +
		` BEGIN SELECT RAISE(ABORT, 'insert disabled'); END`)
	require.NoError(t, err)
}

func (s *testServer) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func hopForm() url.Values {
	return url.Values{
		"name":           {"The Musical Hop"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1015 Folsom Street"},
		"phone":          {"123-123-1234"},
		"genres":         {"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		"website_link":   {"https://www.themusicalhop.com"},
		"facebook_link":  {"https://www.facebook.com/TheMusicalHop"},
		"seeking_talent": {"y"},
		"image_link":     {"https://images.unsplash.com/photo-1543900694-133f37abaaa5"},
	}
}

func petalsForm() url.Values {
	return url.Values{
		"name":          {"Guns N Petals"},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"phone":         {"326-123-5000"},
		"genres":        {"Rock n Roll"},
		"seeking_venue": {"y"},
	}
}

// seed creates one venue and one artist through the handlers and
// returns their ids.
func (s *testServer) seed(t *testing.T) (venueID, artistID uint64) {
	t.Helper()
	rec := s.postForm("/venues/create", hopForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v := decode[struct {
		Venue struct{ ID uint64 } `json:"venue"`
	}](t, rec)

	rec = s.postForm("/artists/create", petalsForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	a := decode[struct {
		Artist struct{ ID uint64 } `json:"artist"`
	}](t, rec)
	return v.Venue.ID, a.Artist.ID
}

var errBrokerDown = errors.New("broker down")
