package resolver

import (
	"testing"

	"TrendBoard/internal/model"
)

func TestCandidates_FallbackChains(t *testing.T) {
	cases := []struct {
		asset  string
		venues []string
		pairs  []string
	}{
		{"NATIX", []string{"kucoin", "gate", "mexc"}, []string{"NATIX-USDT", "NATIX_USDT", "NATIXUSDT"}},
		{"TIG", []string{"xt"}, []string{"tig_usdt"}},
		{"FAI", []string{"bitmart", "bingx"}, []string{"FAI_USDT", "FAI-USDT"}},
		{"BTC", []string{"coinbase"}, []string{"BTC-USD"}},
		{"ETH", []string{"coinbase"}, []string{"ETH-USD"}},
	}
	for _, tc := range cases {
		t.Run(tc.asset, func(t *testing.T) {
			got := Candidates(model.AssetSpec{Symbol: tc.asset}, "USDT")
			if len(got) != len(tc.venues) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tc.venues))
			}
			for i, c := range got {
				if c.Venue != tc.venues[i] || c.Pair != tc.pairs[i] {
					t.Errorf("candidate %d = %s %s, want %s %s",
						i, c.Venue, c.Pair, tc.venues[i], tc.pairs[i])
				}
				if c.Derived {
					t.Errorf("dollar-quoted candidate %d should not be derived", i)
				}
			}
		})
	}
}

func TestCandidates_QuoteConventions(t *testing.T) {
	got := Candidates(model.AssetSpec{Symbol: "ETH"}, "USDT")
	if got[0].Quote != "USD" {
		t.Errorf("primary venue quote = %s, want USD", got[0].Quote)
	}
	got = Candidates(model.AssetSpec{Symbol: "NATIX"}, "USDT")
	for _, c := range got {
		if c.Quote != "USDT" {
			t.Errorf("%s quote = %s, want USDT", c.Venue, c.Quote)
		}
	}
}

func TestCandidates_BTCQuote(t *testing.T) {
	// Direct BTC market on the primary venue.
	got := Candidates(model.AssetSpec{Symbol: "ETH"}, QuoteBTC)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Pair != "ETH-BTC" || got[0].Derived {
		t.Errorf("ETH in BTC should be direct ETH-BTC, got %+v", got[0])
	}

	// No BTC market anywhere: cross-rate from the USDT pairs.
	got = Candidates(model.AssetSpec{Symbol: "NATIX"}, QuoteBTC)
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	for _, c := range got {
		if !c.Derived {
			t.Errorf("%s candidate should be derived", c.Venue)
		}
		if c.Quote != QuoteBTC {
			t.Errorf("%s quote = %s, want BTC", c.Venue, c.Quote)
		}
	}
	if got[0].Pair != "NATIX-USDT" {
		t.Errorf("derived candidate keeps the dollar pair spelling, got %s", got[0].Pair)
	}
}

func TestCandidates_PreferredVenueOverride(t *testing.T) {
	got := Candidates(model.AssetSpec{Symbol: "NATIX", Venue: "mexc"}, "USDT")
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want exactly 1", len(got))
	}
	if got[0].Venue != "mexc" || got[0].Pair != "NATIXUSDT" {
		t.Errorf("override candidate = %+v", got[0])
	}

	// Override to a venue with no spelling entry resolves to nothing.
	if got := Candidates(model.AssetSpec{Symbol: "NATIX", Venue: "coinbase"}, "USDT"); len(got) != 0 {
		t.Errorf("got %d candidates for unlisted override, want 0", len(got))
	}
}

func TestCandidates_UnknownAssetDefaultsToPrimary(t *testing.T) {
	got := Candidates(model.AssetSpec{Symbol: "DOGE"}, "USDT")
	if len(got) != 1 || got[0].Venue != "coinbase" || got[0].Pair != "DOGE-USD" {
		t.Fatalf("unexpected candidates %+v", got)
	}
	got = Candidates(model.AssetSpec{Symbol: "DOGE"}, QuoteBTC)
	if len(got) != 1 || got[0].Pair != "DOGE-BTC" || got[0].Derived {
		t.Fatalf("unexpected BTC candidates %+v", got)
	}
}

func TestBTCReference(t *testing.T) {
	ref := BTCReference()
	if ref.Venue != "coinbase" || ref.Pair != "BTC-USD" {
		t.Errorf("BTC reference = %+v", ref)
	}
}
