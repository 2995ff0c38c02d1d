package model

import "time"

// Show represents one booking of an artist at a venue.  Both
// references are required and a show never outlives its artist or
// its venue.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – artist performing the show.
//  VenueID   – venue hosting the show.
//  StartTime – event date and time, stored in UTC.
//  CreatedAt – creation timestamp.
type Show struct {
	ID        uint64    `db:"id" json:"id"`                 // shows.id
	ArtistID  uint64    `db:"artist_id" json:"artist_id"`   // shows.artist_id
	VenueID   uint64    `db:"venue_id" json:"venue_id"`     // shows.venue_id
	StartTime time.Time `db:"start_time" json:"start_time"` // shows.start_time
	CreatedAt time.Time `db:"created_at" json:"created_at"` // shows.created_at
}

// Bucket classifies a show relative to a point in time.
type Bucket int

const (
	// Neither is returned when the show starts exactly at the evaluation time.
	Neither Bucket = iota
	// Past means the show started before the evaluation time.
	Past
	// Upcoming means the show starts after the evaluation time.
	Upcoming
)

func (b Bucket) String() string {
	switch b {
	case Past:
		return "past"
	case Upcoming:
		return "upcoming"
	default:
		return "neither"
	}
}

// Partition reports whether a show starting at start is past or
// upcoming at now.  Both comparisons are strict, so a show starting
// exactly at now lands in Neither.  The repository queries use the
// same operators (start_time < ? / start_time > ?).
func Partition(start, now time.Time) Bucket {
	switch {
	case start.Before(now):
		return Past
	case start.After(now):
		return Upcoming
	default:
		return Neither
	}
}

// Normalize truncates t to whole seconds in UTC.  Every time value
// written to or compared against the shows table goes through it so
// that both storage dialects see the same representation.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
