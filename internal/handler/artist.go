package handler // artist pages and form submissions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/errs"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/validation"
)

// ListArtists handles GET /artists.
func (h *BookingHandler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// SearchArtists handles POST /artists/search.
func (h *BookingHandler) SearchArtists(c echo.Context) error {
	var form SearchForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	res, err := h.Artists.Search(c.Request().Context(), form.SearchTerm)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"results": res, "search_term": form.SearchTerm})
}

// ShowArtist handles GET /artists/:id; unknown artists redirect to /artists.
func (h *BookingHandler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/artists")
	}
	detail, err := h.Artists.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.Redirect(http.StatusSeeOther, "/artists")
		}
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// NewArtistForm handles GET /artists/create.
func (h *BookingHandler) NewArtistForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": ArtistForm{}, "choices": choices})
}

// CreateArtist handles POST /artists/create.
func (h *BookingHandler) CreateArtist(c echo.Context) error {
	var form ArtistForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	artist := form.Artist()
	if err := h.Artists.Create(c.Request().Context(), artist); err != nil {
		logger(c).Error().Err(err).Str("artist", artist.Name).Msg("create artist failed")
		return failure(c, http.StatusInternalServerError, "An error occurred. Artist "+artist.Name+" could not be listed.")
	}
	h.publish(c, queue.ArtistListed(artist))
	return c.JSON(http.StatusCreated, echo.Map{
		"flash":  "Artist " + artist.Name + " was successfully listed!",
		"artist": artist,
	})
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *BookingHandler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/artists")
	}
	artist, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.Redirect(http.StatusSeeOther, "/artists")
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":    artistFormFrom(artist),
		"artist":  artist,
		"choices": choices,
	})
}

// UpdateArtist handles POST /artists/:id/edit.  Unlike a silent
// best-effort save, a failed update is reported to the client.
func (h *BookingHandler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var form ArtistForm
	if err := validation.BindAndValidate(c, &form); err != nil {
		return err
	}
	artist := form.Artist()
	artist.ID = id
	if err := h.Artists.Update(c.Request().Context(), artist); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return errs.NewNotFoundError("artist not found", "/artists")
		}
		logger(c).Error().Err(err).Uint64("artist_id", id).Msg("update artist failed")
		return failure(c, http.StatusInternalServerError, "An error occurred. Artist "+artist.Name+" could not be updated.")
	}
	return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(id, 10))
}

// DeleteArtist handles DELETE /artists/:id.
func (h *BookingHandler) DeleteArtist(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	if err := h.Artists.Delete(c.Request().Context(), id); err != nil {
		logger(c).Warn().Err(err).Uint64("artist_id", id).Msg("delete artist failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
