package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// genreSeparator joins genre tags in the genres column.
const genreSeparator = ", "

// Genres is the ordered list of genre tags attached to a venue or an
// artist.  The delimited string only exists at the storage boundary:
// Value joins the tags and Scan splits them again.
type Genres []string

// ParseGenres splits a stored genres column.  An empty column yields
// an empty, non-nil list.
func ParseGenres(s string) Genres {
	if strings.TrimSpace(s) == "" {
		return Genres{}
	}
	parts := strings.Split(s, genreSeparator)
	out := make(Genres, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String joins the tags with the storage separator.
func (g Genres) String() string {
	return strings.Join(g, genreSeparator)
}

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	return g.String(), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = Genres{}
	case string:
		*g = ParseGenres(v)
	case []byte:
		*g = ParseGenres(string(v))
	default:
		return fmt.Errorf("genres: unsupported column type %T", src)
	}
	return nil
}
