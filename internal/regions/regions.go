// Package regions maps ISO 3166 region codes to localized country names and
// compares country names across languages.
package regions

import (
	"sort"
	"strings"
	"sync"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLocale is used when the configured locale cannot be parsed.
var DefaultLocale = language.Dutch

// Localizer names regions in one locale and orders names the way that locale does.
type Localizer struct {
	tag   language.Tag
	namer display.Namer
}

// NewLocalizer builds a Localizer for a BCP 47 locale such as "nl" or "en-US".
func NewLocalizer(locale string) *Localizer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		tag = DefaultLocale
	}
	return &Localizer{tag: tag, namer: display.Regions(tag)}
}

// Tag returns the locale of the Localizer.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Name returns the localized name of a region code, or the code itself when
// no localized name exists.
func (l *Localizer) Name(code string) string {
	code = strings.TrimSpace(code)
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := l.namer.Name(region); name != "" {
		return name
	}
	return code
}

// Collator returns a fresh collator for the locale. Collators keep internal
// buffers and must not be shared between goroutines.
func (l *Localizer) Collator() *collate.Collator {
	return collate.New(l.tag)
}

// SortUnique sorts names in locale order and drops duplicates. The input
// slice is reused.
func (l *Localizer) SortUnique(names []string) []string {
	c := l.Collator()
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
	out := names[:0]
	for _, name := range names {
		if len(out) > 0 && out[len(out)-1] == name {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Fold lowercases s, strips diacritics and surrounding whitespace.
func Fold(s string) string {
	return strings.TrimSpace(strings.ToLower(unidecode.Unidecode(s)))
}

// aliasLocales are the languages whose country names are accepted as aliases.
var aliasLocales = []language.Tag{
	language.Dutch,
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Portuguese,
}

type aliasIndex struct {
	byName map[string][]string // folded name -> region codes
	names  map[string][]string // region code -> folded names, code included
}

var (
	indexOnce sync.Once
	index     *aliasIndex
)

func loadIndex() *aliasIndex {
	indexOnce.Do(func() {
		index = buildIndex()
	})
	return index
}

func buildIndex() *aliasIndex {
	idx := &aliasIndex{
		byName: make(map[string][]string),
		names:  make(map[string][]string),
	}
	namers := make([]display.Namer, len(aliasLocales))
	for i, tag := range aliasLocales {
		namers[i] = display.Regions(tag)
	}

	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() {
				continue
			}
			code := region.String()
			if _, seen := idx.names[code]; seen {
				continue
			}
			var folded []string
			for _, namer := range namers {
				if name := namer.Name(region); name != "" {
					folded = appendUnique(folded, Fold(name))
				}
			}
			if len(folded) == 0 {
				continue
			}
			folded = appendUnique(folded, Fold(code))
			idx.names[code] = folded
			for _, name := range folded {
				idx.byName[name] = appendUnique(idx.byName[name], code)
			}
		}
	}
	return idx
}

// SameCountry reports whether a and b name the same country, ignoring case and
// diacritics. Names in any alias language and ISO codes are accepted.
func SameCountry(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	if fa == fb {
		return true
	}
	idx := loadIndex()
	for _, code := range idx.byName[fa] {
		for _, alias := range idx.names[code] {
			if alias == fb {
				return true
			}
		}
	}
	return false
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
