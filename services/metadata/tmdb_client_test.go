package metadata

import (
	"encoding/json"
	"testing"
)

func TestBuildTMDBImage(t *testing.T) {
	if img := buildTMDBImage(tmdbDefaultImageURL, "", tmdbPosterSize); img != nil {
		t.Fatal("expected nil image when path empty")
	}
	img := buildTMDBImage(tmdbDefaultImageURL, "/poster.png", tmdbPosterSize)
	if img == nil {
		t.Fatal("expected image for valid path")
	}
	if *img != "https://image.tmdb.org/t/p/w342/poster.png" {
		t.Fatalf("unexpected image url: %s", *img)
	}
	logo := buildTMDBImage(tmdbDefaultImageURL, "/logo.jpg", tmdbLogoSize)
	if logo == nil || *logo != "https://image.tmdb.org/t/p/w92/logo.jpg" {
		t.Fatalf("unexpected logo url: %v", logo)
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		release, firstAir, expect string
	}{
		{"2024-05-01", "", "2024"},
		{"", "2019-01-01", "2019"},
		{"2001-02-03", "1999-01-01", "2001"},
		{"199", "", "199"},
		{"", "", "Onbekend"},
	}
	for _, tc := range tests {
		if got := releaseYear(tc.release, tc.firstAir); got != tc.expect {
			t.Fatalf("releaseYear(%q, %q) = %q, want %q", tc.release, tc.firstAir, got, tc.expect)
		}
	}
}

func TestRegionsKeepUpstreamOrder(t *testing.T) {
	body := `{"id":1,"results":{
		"US":{"link":"x","flatrate":[{"provider_id":8,"provider_name":"Netflix","logo_path":"/n.png"}]},
		"NL":{"rent":[{"provider_id":2,"provider_name":"Apple TV"}]},
		"BE":{}
	}}`
	var resp tmdbWatchProvidersResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(resp.Results))
	}
	for i, code := range []string{"US", "NL", "BE"} {
		if resp.Results[i].Code != code {
			t.Fatalf("region %d = %s, want %s", i, resp.Results[i].Code, code)
		}
	}
	if got := resp.Results[0].Providers.Flatrate[0].ProviderName; got != "Netflix" {
		t.Fatalf("unexpected provider %q", got)
	}
	if resp.Results[2].Providers.available() {
		t.Fatal("empty region must not count as available")
	}
}

func TestRegionsNullAndInvalid(t *testing.T) {
	var resp tmdbWatchProvidersResponse
	if err := json.Unmarshal([]byte(`{"id":1,"results":null}`), &resp); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no regions, got %d", len(resp.Results))
	}
	if err := json.Unmarshal([]byte(`{"id":1,"results":[1,2]}`), &resp); err == nil {
		t.Fatal("expected error for array results")
	}
}
