package handler // form payloads accepted by the create and edit endpoints

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/validation"
)

// Checkbox binds an HTML checkbox.  Browsers send "y" or "on" when it is
// ticked and omit the field otherwise; JSON clients may send a bool.
type Checkbox bool

// UnmarshalParam implements echo.BindUnmarshaler.
func (b *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "y", "yes", "on", "true", "1":
		*b = true
	case "", "n", "no", "off", "false", "0":
		*b = false
	default:
		return fmt.Errorf("invalid checkbox value %q", param)
	}
	return nil
}

func (b *Checkbox) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*b = false
	case bool:
		*b = Checkbox(t)
	case string:
		return b.UnmarshalParam(t)
	default:
		return fmt.Errorf("invalid checkbox value %s", data)
	}
	return nil
}

// VenueForm is the venue create/edit form.
type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      Checkbox `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

func (f *VenueForm) Validate() error { return validation.Struct(f) }

// Venue converts the form into a model, trimming free text.
func (f *VenueForm) Venue() *model.Venue {
	return &model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		WebsiteLink:        strings.TrimSpace(f.WebsiteLink),
		Genres:             model.Genres(f.Genres),
		SeekingTalent:      bool(f.SeekingTalent),
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
	}
}

func venueFormFrom(v *model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             []string(v.Genres),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      Checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

// ArtistForm is the artist create/edit form.
type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Phone              string   `form:"phone" json:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       Checkbox `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

func (f *ArtistForm) Validate() error { return validation.Struct(f) }

// Artist converts the form into a model.
func (f *ArtistForm) Artist() *model.Artist {
	return &model.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               strings.TrimSpace(f.City),
		State:              f.State,
		Phone:              strings.TrimSpace(f.Phone),
		ImageLink:          strings.TrimSpace(f.ImageLink),
		Genres:             model.Genres(f.Genres),
		FacebookLink:       strings.TrimSpace(f.FacebookLink),
		WebsiteLink:        strings.TrimSpace(f.WebsiteLink),
		SeekingVenue:       bool(f.SeekingVenue),
		SeekingDescription: strings.TrimSpace(f.SeekingDescription),
	}
}

func artistFormFrom(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             []string(a.Genres),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       Checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

// startTimeLayouts are tried in order.  Layouts without a zone are read
// as UTC.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ShowForm is the show create form.
type ShowForm struct {
	ArtistID  uint64 `form:"artist_id" json:"artist_id" validate:"required,gt=0"`
	VenueID   uint64 `form:"venue_id" json:"venue_id" validate:"required,gt=0"`
	StartTime string `form:"start_time" json:"start_time" validate:"required"`

	start time.Time
}

// Validate checks the tags and then parses StartTime.
func (f *ShowForm) Validate() error {
	if err := validation.Struct(f); err != nil {
		return err
	}
	t, err := parseStartTime(f.StartTime)
	if err != nil {
		return validation.CustomValidationErrors{{
			Field:   "start_time",
			Message: "must be a date and time such as 2019-05-21 21:30:00",
		}}
	}
	f.start = t
	return nil
}

// Show converts a validated form into a model.
func (f *ShowForm) Show() *model.Show {
	return &model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: f.start}
}

func parseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return model.Normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start time %q", s)
}

// SearchForm carries the search box of the list pages.
type SearchForm struct {
	SearchTerm string `form:"search_term" json:"search_term" validate:"max=200"`
}

func (f *SearchForm) Validate() error { return validation.Struct(f) }

// formChoices are the select options offered by the venue and artist forms.
type formChoices struct {
	Genres []string `json:"genres"`
	States []string `json:"states"`
}

var choices = formChoices{Genres: model.GenreChoices, States: model.StateChoices}
