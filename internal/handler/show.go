package handler // show listing and booking

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/validation"
)

const (
	showListedFlash = "Show was successfully listed!"
	showFailedFlash = "An error occurred. Show could not be listed."
)

// ListShows handles GET /shows.
func (h *BookingHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// NewShowForm handles GET /shows/create.
func (h *BookingHandler) NewShowForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": ShowForm{}})
}

// CreateShow handles POST /shows/create.  A show naming an unknown artist
// or venue is a bad request; any other failure is a server error.
func (h *BookingHandler) CreateShow(c echo.Context) error {
	var form ShowForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	show := form.Show()
	if err := h.Shows.Create(c.Request().Context(), show); err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			return c.JSON(http.StatusBadRequest, echo.Map{"flash": showFailedFlash, "error": err.Error()})
		}
		logger(c).Error().Err(err).Uint64("artist_id", show.ArtistID).Uint64("venue_id", show.VenueID).Msg("create show failed")
		return failure(c, http.StatusInternalServerError, showFailedFlash)
	}
	h.publish(c, queue.ShowListed(show))
	return c.JSON(http.StatusCreated, echo.Map{"flash": showListedFlash, "show": show})
}
