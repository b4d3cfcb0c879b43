package presenter

import (
	"fmt"
	"html/template"
	"strings"

	"streamfinder/models"
)

const (
	visibleProviders = 6
	visibleCountries = 6

	noStreamingInfo      = "Geen streaming-info"
	noStreamingServices  = "Geen streamingdiensten gevonden"
	noStreamingCountries = "Geen streaminglanden gevonden."
	rentPriceNote        = "prijs: verschilt per titel/regio"
)

// placeholderPoster is shown for titles without a poster image.
const placeholderPoster = template.URL(`data:image/svg+xml;utf8,<svg xmlns="http://www.w3.org/2000/svg" width="342" height="513"><rect width="100%" height="100%" fill="%23dedede"/><text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle" fill="%23666" font-family="Arial" font-size="22">No Poster</text></svg>`)

// Chip is a single provider label. Placeholder chips have no logo.
type Chip struct {
	Name        string
	LogoURL     string
	Placeholder bool
}

// Card is the view model of one search result in the result list.
type Card struct {
	Key         string
	PosterURL   template.URL
	PosterAlt   string
	Title       string
	Meta        string
	Description string
	Countries   string
	Chips       []Chip
	// MoreProviders is the "+N meer" label; empty when all providers fit.
	MoreProviders string
	// MoreCountries is the "+N landen" label; empty for six countries or fewer.
	MoreCountries string
}

// Details is the view model of the opened details view.
type Details struct {
	Key          string
	PosterURL    template.URL
	PosterAlt    string
	Title        string
	Meta         string
	Description  string
	Subscription []Chip
	Rent         []string
	Buy          []Chip
	Countries    []string
	Check        CountryCheck
}

// ShowRent reports whether the rental section is rendered.
func (d Details) ShowRent() bool { return len(d.Rent) > 0 }

// ShowBuy reports whether the purchase section is rendered.
func (d Details) ShowBuy() bool { return len(d.Buy) > 0 }

// NewCard builds the result-list card of a search result.
func NewCard(r models.SearchResult) Card {
	card := Card{
		Key:         r.Key(),
		PosterURL:   posterURL(r.PosterURL),
		PosterAlt:   "Poster van " + r.Title,
		Title:       r.Title,
		Meta:        MetaLabel(r.MediaType, r.Year),
		Description: r.Description,
		Countries:   FormatCountries(r.StreamingCountries),
	}

	if len(r.Providers) == 0 {
		card.Chips = []Chip{{Name: noStreamingInfo, Placeholder: true}}
	} else {
		visible := r.Providers[:min(len(r.Providers), visibleProviders)]
		card.Chips = chips(visible)
		if hidden := len(r.Providers) - len(visible); hidden > 0 {
			card.MoreProviders = fmt.Sprintf("+%d meer", hidden)
		}
	}
	if hidden := len(r.StreamingCountries) - visibleCountries; hidden > 0 {
		card.MoreCountries = fmt.Sprintf("+%d landen", hidden)
	}
	return card
}

// NewDetails builds the details view of a search result from scratch, with an
// empty country check.
func NewDetails(r models.SearchResult) Details {
	subscription := r.Details.SubscriptionProviders
	if len(subscription) == 0 {
		subscription = r.Providers
	}
	d := Details{
		Key:         r.Key(),
		PosterURL:   posterURL(r.PosterURL),
		PosterAlt:   "Poster van " + r.Title,
		Title:       r.Title,
		Meta:        MetaLabel(r.MediaType, r.Year),
		Description: r.Description,
		Buy:         chips(r.Details.BuyProviders),
		Countries:   append([]string(nil), r.StreamingCountries...),
	}
	if len(subscription) == 0 {
		d.Subscription = []Chip{{Name: noStreamingServices, Placeholder: true}}
	} else {
		d.Subscription = chips(subscription)
	}
	for _, p := range r.Details.RentProviders {
		d.Rent = append(d.Rent, p.Name+" - "+rentPriceNote)
	}
	return d
}

// FormatCountries renders the country summary line of a card.
func FormatCountries(countries []string) string {
	if len(countries) == 0 {
		return noStreamingCountries
	}
	visible := countries[:min(len(countries), visibleCountries)]
	line := "Beschikbaar in: " + strings.Join(visible, ", ")
	if hidden := len(countries) - len(visible); hidden > 0 {
		line += fmt.Sprintf(" +%d meer", hidden)
	}
	return line
}

// MetaLabel renders the localized media type and year, e.g. "Film • 2010".
func MetaLabel(mediaType, year string) string {
	label := "Serie"
	if mediaType == models.MediaTypeMovie {
		label = "Film"
	}
	return label + " • " + year
}

func posterURL(u *string) template.URL {
	if u == nil || *u == "" {
		return placeholderPoster
	}
	return template.URL(*u)
}

func chips(providers []models.Provider) []Chip {
	out := make([]Chip, 0, len(providers))
	for _, p := range providers {
		chip := Chip{Name: p.Name}
		if p.LogoURL != nil {
			chip.LogoURL = *p.LogoURL
		}
		out = append(out, chip)
	}
	return out
}
