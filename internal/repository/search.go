package repository

import "strings"

// likeEscape is used in `LIKE ? ESCAPE '!'`. A bang is used rather
// than a backslash because MySQL treats backslashes in string literals
// as escapes unless NO_BACKSLASH_ESCAPES is set.
const likeEscape = "!"

// containsPattern builds a case-insensitive substring pattern for
// `LOWER(col) LIKE ? ESCAPE '!'`. An empty keyword matches every row.
func containsPattern(keyword string) string {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	kw = strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(kw)
	return "%" + kw + "%"
}

// SearchResult is the payload of a name search: the number of matches
// and one summary row per match.
type SearchResult struct {
	Count int             `json:"count"`
	Data  []EntitySummary `json:"data"`
}

// EntitySummary is a venue or artist reduced to what list and search
// pages display.
type EntitySummary struct {
	ID               uint64 `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	NumUpcomingShows int    `db:"num_upcoming_shows" json:"num_upcoming_shows"`
}
