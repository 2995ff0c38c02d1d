package handler // venue pages and form submissions

import (
	"errors"   // errors matches repository sentinels
	"net/http" // net/http provides status codes
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/errs"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/validation"
)

// ListVenues handles GET /venues and returns venues grouped by city and state.
func (h *BookingHandler) ListVenues(c echo.Context) error {
	areas, err := h.Venues.ListGroupedByLocation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues handles POST /venues/search.
func (h *BookingHandler) SearchVenues(c echo.Context) error {
	var form SearchForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	res, err := h.Venues.Search(c.Request().Context(), form.SearchTerm)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"results": res, "search_term": form.SearchTerm})
}

// ShowVenue handles GET /venues/:id.  A missing venue sends the client
// back to the venue list.
func (h *BookingHandler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/venues")
	}
	detail, err := h.Venues.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.Redirect(http.StatusSeeOther, "/venues")
		}
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// NewVenueForm handles GET /venues/create.
func (h *BookingHandler) NewVenueForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": VenueForm{}, "choices": choices})
}

// CreateVenue handles POST /venues/create.
func (h *BookingHandler) CreateVenue(c echo.Context) error {
	var form VenueForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	venue := form.Venue()
	if err := h.Venues.Create(c.Request().Context(), venue); err != nil {
		logger(c).Error().Err(err).Str("venue", venue.Name).Msg("create venue failed")
		return failure(c, http.StatusInternalServerError, "An error occurred. Venue "+venue.Name+" could not be listed.")
	}
	h.publish(c, queue.VenueListed(venue))
	return c.JSON(http.StatusCreated, echo.Map{
		"flash": "Venue " + venue.Name + " was successfully listed!",
		"venue": venue,
	})
}

// EditVenueForm handles GET /venues/:id/edit and returns the stored
// values for the edit form.
func (h *BookingHandler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/venues")
	}
	venue, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.Redirect(http.StatusSeeOther, "/venues")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":    venueFormFrom(venue),
		"venue":   venue,
		"choices": choices,
	})
}

// UpdateVenue handles POST /venues/:id/edit and redirects to the venue page.
func (h *BookingHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var form VenueForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	venue := form.Venue()
	venue.ID = id
	if err := h.Venues.Update(c.Request().Context(), venue); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return errs.NewNotFoundError("venue not found", "/venues")
		}
		logger(c).Error().Err(err).Uint64("venue_id", id).Msg("update venue failed")
		return failure(c, http.StatusInternalServerError, "An error occurred. Venue "+venue.Name+" could not be updated.")
	}
	return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(id, 10))
}

// DeleteVenue handles DELETE /venues/:id.  The body reports the outcome
// as {"success": bool}; any failure answers 400.
func (h *BookingHandler) DeleteVenue(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		logger(c).Warn().Err(err).Uint64("venue_id", id).Msg("delete venue failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
