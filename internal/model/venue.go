package model

import "time"

// Venue represents a place that books artists.  A venue owns zero or
// more shows; deleting a venue removes its shows through the
// `shows.venue_id` foreign key (ON DELETE CASCADE).  This struct
// corresponds to a row in the `venues` table.
//
// Fields:
//  ID                 – primary key identifier, assigned by the DB.
//  Name               – display name of the venue.
//  City, State        – location used to group venues on the list page.
//  Address, Phone     – contact details.
//  ImageLink          – URL of the venue picture.
//  FacebookLink       – URL of the venue facebook page.
//  WebsiteLink        – URL of the venue website.
//  Genres             – ordered genre tags (stored as "Jazz, Blues").
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown next to SeekingTalent.
//  CreatedAt          – creation timestamp, server assigned.
//  UpdatedAt          – last update timestamp.
type Venue struct {
	ID                 uint64    `db:"id" json:"id"`                                   // venues.id
	Name               string    `db:"name" json:"name"`                               // venues.name
	City               string    `db:"city" json:"city"`                               // venues.city
	State              string    `db:"state" json:"state"`                             // venues.state
	Address            string    `db:"address" json:"address"`                         // venues.address
	Phone              string    `db:"phone" json:"phone"`                             // venues.phone
	ImageLink          string    `db:"image_link" json:"image_link"`                   // venues.image_link
	FacebookLink       string    `db:"facebook_link" json:"facebook_link"`             // venues.facebook_link
	WebsiteLink        string    `db:"website_link" json:"website"`                    // venues.website_link
	Genres             Genres    `db:"genres" json:"genres"`                           // venues.genres
	SeekingTalent      bool      `db:"seeking_talent" json:"seeking_talent"`           // venues.seeking_talent
	SeekingDescription string    `db:"seeking_description" json:"seeking_description"` // venues.seeking_description
	CreatedAt          time.Time `db:"created_at" json:"created_at"`                   // venues.created_at
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`                   // venues.updated_at
}
