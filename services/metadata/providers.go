package metadata

import (
	"sort"

	"golang.org/x/text/collate"

	"streamfinder/internal/regions"
	"streamfinder/models"
)

// providerSet collects providers keyed by id. A later entry for a known id
// overwrites name and logo but keeps the position of the first one.
type providerSet struct {
	imageBase string
	index     map[int64]int
	items     []models.Provider
}

func newProviderSet(imageBase string) *providerSet {
	return &providerSet{imageBase: imageBase, index: make(map[int64]int)}
}

func (s *providerSet) add(list []tmdbProvider) {
	for _, p := range list {
		provider := models.Provider{
			ID:      p.ProviderID,
			Name:    p.ProviderName,
			LogoURL: buildTMDBImage(s.imageBase, p.LogoPath, tmdbLogoSize),
		}
		if idx, ok := s.index[p.ProviderID]; ok {
			s.items[idx] = provider
			continue
		}
		s.index[p.ProviderID] = len(s.items)
		s.items = append(s.items, provider)
	}
}

// sorted returns a name-ordered copy; never nil.
func (s *providerSet) sorted(c *collate.Collator) []models.Provider {
	out := make([]models.Provider, len(s.items))
	copy(out, s.items)
	sortProviders(out, c)
	return out
}

func sortProviders(list []models.Provider, c *collate.Collator) {
	sort.SliceStable(list, func(i, j int) bool {
		return c.CompareString(list[i].Name, list[j].Name) < 0
	})
}

// availability is the merged provider data of one title.
type availability struct {
	countries    []string
	summary      []models.Provider
	subscription []models.Provider
	rent         []models.Provider
	buy          []models.Provider
}

func emptyAvailability() availability {
	return availability{
		countries:    []string{},
		summary:      []models.Provider{},
		subscription: []models.Provider{},
		rent:         []models.Provider{},
		buy:          []models.Provider{},
	}
}

// mergeRegions folds every region of a watch-provider response into three
// provider buckets and the list of countries where the title is available.
func mergeRegions(entries tmdbRegions, loc *regions.Localizer, imageBase string, maxSummary int) availability {
	subscription := newProviderSet(imageBase)
	rent := newProviderSet(imageBase)
	buy := newProviderSet(imageBase)
	countries := []string{}

	for _, region := range entries {
		p := region.Providers
		if p.available() {
			countries = append(countries, loc.Name(region.Code))
		}
		subscription.add(p.Flatrate)
		subscription.add(p.Free)
		subscription.add(p.Ads)
		rent.add(p.Rent)
		buy.add(p.Buy)
	}

	c := loc.Collator()
	avail := availability{
		countries:    loc.SortUnique(countries),
		subscription: subscription.sorted(c),
		rent:         rent.sorted(c),
		buy:          buy.sorted(c),
	}

	summary := make([]models.Provider, len(avail.subscription))
	copy(summary, avail.subscription)
	sortProviders(summary, c)
	if maxSummary > 0 && len(summary) > maxSummary {
		summary = summary[:maxSummary]
	}
	avail.summary = summary
	return avail
}
