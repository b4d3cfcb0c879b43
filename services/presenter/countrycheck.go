package presenter

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"streamfinder/internal/regions"
)

// Country check states, rendered as data-state on the result element.
const (
	CheckStateNone = ""
	CheckStateYes  = "yes"
	CheckStateNo   = "no"
)

const (
	checkPrompt    = "Vul een land in om te controleren."
	maxSuggestions = 3
)

// CountryCheck is the outcome of one availability lookup for a single country.
type CountryCheck struct {
	Input       string
	Message     string
	State       string
	Match       string
	Suggestions []string
}

// CheckCountry looks input up in the country list of the active entity. A
// match ignores case and diacritics; failing that, the ISO code or a foreign
// name of the same country is accepted. active is false when no entity is open.
func CheckCountry(countries []string, input string, active bool) CountryCheck {
	input = strings.TrimSpace(input)
	if !active || input == "" {
		return CountryCheck{Input: input, Message: checkPrompt}
	}

	folded := regions.Fold(input)
	for _, country := range countries {
		if regions.Fold(country) == folded {
			return found(input, country)
		}
	}
	for _, country := range countries {
		if regions.SameCountry(country, input) {
			return found(input, country)
		}
	}

	return CountryCheck{
		Input:       input,
		Message:     fmt.Sprintf(`Nee, niet gevonden voor "%s".`, input),
		State:       CheckStateNo,
		Suggestions: suggest(countries, folded),
	}
}

func found(input, country string) CountryCheck {
	return CountryCheck{
		Input:   input,
		Message: fmt.Sprintf("Ja, beschikbaar in %s.", country),
		State:   CheckStateYes,
		Match:   country,
	}
}

// suggest returns the closest country names to a folded input.
func suggest(countries []string, folded string) []string {
	if len(countries) == 0 {
		return nil
	}
	targets := make([]string, len(countries))
	for i, c := range countries {
		targets[i] = regions.Fold(c)
	}
	matches := fuzzy.Find(folded, targets)
	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, countries[m.Index])
	}
	return out
}
