// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"strconv"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ListingCreatedQueue is the durable queue carrying ListingCreatedEvent.
const ListingCreatedQueue = "listing.created"

// Listing kinds.
const (
	KindVenue  = "venue"
	KindArtist = "artist"
	KindShow   = "show"
)

// ListingCreatedEvent is published once a venue, artist or show has been
// committed.  It carries enough for the activity log without a lookup in
// the primary database.
type ListingCreatedEvent struct {
	Kind      string `json:"kind"`
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	ArtistID  uint64 `json:"artist_id,omitempty"`
	VenueID   uint64 `json:"venue_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	CreatedAt string `json:"created_at"`
}

// VenueListed builds the event for a stored venue.
func VenueListed(v *model.Venue) ListingCreatedEvent {
	return ListingCreatedEvent{
		Kind:      KindVenue,
		ID:        v.ID,
		Name:      v.Name,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ArtistListed builds the event for a stored artist.
func ArtistListed(a *model.Artist) ListingCreatedEvent {
	return ListingCreatedEvent{
		Kind:      KindArtist,
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ShowListed builds the event for a stored show.  Shows have no name of
// their own; the artist/venue pair is used instead.
func ShowListed(s *model.Show) ListingCreatedEvent {
	return ListingCreatedEvent{
		Kind:      KindShow,
		ID:        s.ID,
		Name:      "artist " + strconv.FormatUint(s.ArtistID, 10) + " @ venue " + strconv.FormatUint(s.VenueID, 10),
		ArtistID:  s.ArtistID,
		VenueID:   s.VenueID,
		StartTime: s.StartTime.UTC().Format(time.RFC3339),
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
