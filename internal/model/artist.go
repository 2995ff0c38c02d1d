package model

import "time"

// Artist represents a performer that can be booked by venues.  Like
// Venue, an artist owns its shows and deleting it cascades to the
// `shows` table.  SeekingVenue mirrors Venue.SeekingTalent.
type Artist struct {
	ID                 uint64    `db:"id" json:"id"`                                   // artists.id
	Name               string    `db:"name" json:"name"`                               // artists.name
	City               string    `db:"city" json:"city"`                               // artists.city
	State              string    `db:"state" json:"state"`                             // artists.state
	Phone              string    `db:"phone" json:"phone"`                             // artists.phone
	Genres             Genres    `db:"genres" json:"genres"`                           // artists.genres
	ImageLink          string    `db:"image_link" json:"image_link"`                   // artists.image_link
	FacebookLink       string    `db:"facebook_link" json:"facebook_link"`             // artists.facebook_link
	WebsiteLink        string    `db:"website_link" json:"website"`                    // artists.website_link
	SeekingVenue       bool      `db:"seeking_venue" json:"seeking_venue"`             // artists.seeking_venue
	SeekingDescription string    `db:"seeking_description" json:"seeking_description"` // artists.seeking_description
	CreatedAt          time.Time `db:"created_at" json:"created_at"`                   // artists.created_at
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`                   // artists.updated_at
}
