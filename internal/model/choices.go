package model

import "github.com/samber/lo"

// GenreChoices lists the genre tags offered by the venue and artist forms.
var GenreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Swing", "Other",
}

// StateChoices lists the US state codes offered by the forms.
var StateChoices = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

// IsGenre reports whether g is one of GenreChoices.
func IsGenre(g string) bool { return lo.Contains(GenreChoices, g) }

// IsState reports whether s is one of StateChoices.
func IsState(s string) bool { return lo.Contains(StateChoices, s) }
