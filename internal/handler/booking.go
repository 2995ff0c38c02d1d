package handler // handler package contains the venue, artist and show handlers

import (
	"strconv" // strconv parses path identifiers

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/errs"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	queue_publisher "github.com/iliyamo/fyyur/internal/service"
)

// recentListings is how many venues and artists the home page shows.
const recentListings = 10

// BookingHandler bundles the repositories behind every page of the site.
type BookingHandler struct {
	Venues    *repository.VenueRepo    // Venues provides venue persistence
	Artists   *repository.ArtistRepo   // Artists provides artist persistence
	Shows     *repository.ShowRepo     // Shows provides show persistence
	Publisher queue_publisher.Publisher // Publisher announces new listings
}

// NewBookingHandler constructs a BookingHandler and panics if a
// repository is nil.  A nil publisher disables listing events.
func NewBookingHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, pub queue_publisher.Publisher) *BookingHandler {
	if venues == nil || artists == nil || shows == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	if pub == nil {
		pub = queue_publisher.NopPublisher{}
	}
	return &BookingHandler{Venues: venues, Artists: artists, Shows: shows, Publisher: pub}
}

// parseID reads the :id path parameter.  Detail and edit pages treat a
// malformed id like an unknown one and redirect to the list.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewNotFoundError("invalid id", "")
	}
	return id, nil
}

func logger(c echo.Context) *zerolog.Logger {
	return middleware.GetLogger(c)
}

// publish announces a committed listing.  Broker failures are logged and
// never change the response.
func (h *BookingHandler) publish(c echo.Context, ev queue.ListingCreatedEvent) {
	if err := h.Publisher.PublishListingCreated(c.Request().Context(), ev); err != nil {
		logger(c).Warn().Err(err).Str("kind", ev.Kind).Uint64("id", ev.ID).Msg("could not publish listing event")
	}
}

// failure answers status with a flash notice.  The request id lets an
// operator find the matching log line.
func failure(c echo.Context, status int, flash string) error {
	body := echo.Map{"flash": flash}
	if id := middleware.GetRequestID(c); id != "" {
		body["request_id"] = id
	}
	return c.JSON(status, body)
}
