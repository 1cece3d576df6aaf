// Package resolver maps assets to the venues that list them. Routing is two
// enumerated tables: an ordered fallback chain per asset and an exact symbol
// spelling per (asset, venue). Adding an asset or venue is an additive table
// edit; nothing here is inferred from string formatting.
package resolver

import "TrendBoard/internal/model"

// QuoteBTC requests an asset priced in BTC; anything else requests the
// venue's native dollar convention (USD or USDT depending on venue).
const QuoteBTC = "BTC"

const primaryVenue = "coinbase"

// VenueCandidate is one venue to try for an asset, with the pair spelling
// and quote convention that venue actually uses.
type VenueCandidate struct {
	Venue string
	// Pair is the venue-native spelling, passed to the venue verbatim.
	Pair string
	// Quote is the quote-currency label of the fetched series ("USD",
	// "USDT", or "BTC").
	Quote string
	// Derived marks a candidate whose BTC price must be computed as a
	// cross-rate from this dollar-quoted pair, because no direct BTC
	// market exists for the asset on any venue.
	Derived bool
}

// fallbacks lists the ordered venue chain per asset. Assets not present use
// the primary venue.
var fallbacks = map[string][]string{
	"NATIX": {"kucoin", "gate", "mexc"},
	"TIG":   {"xt"},
	"FAI":   {"bitmart", "bingx"},
}

type listing struct {
	pair  string // dollar-quoted spelling on this venue
	quote string // the venue's dollar convention
	// btcPair is the direct BTC-quoted spelling, empty when the venue has
	// no such market and the BTC price must be derived.
	btcPair string
}

// listings is the exact spelling table per (asset, venue).
var listings = map[string]map[string]listing{
	"BTC": {
		"coinbase": {pair: "BTC-USD", quote: "USD"},
	},
	"ETH": {
		"coinbase": {pair: "ETH-USD", quote: "USD", btcPair: "ETH-BTC"},
	},
	"SOL": {
		"coinbase": {pair: "SOL-USD", quote: "USD", btcPair: "SOL-BTC"},
	},
	"BANANA": {
		"coinbase": {pair: "BANANA-USD", quote: "USD", btcPair: "BANANA-BTC"},
	},
	"NATIX": {
		"kucoin": {pair: "NATIX-USDT", quote: "USDT"},
		"gate":   {pair: "NATIX_USDT", quote: "USDT"},
		"mexc":   {pair: "NATIXUSDT", quote: "USDT"},
	},
	"TIG": {
		"xt": {pair: "tig_usdt", quote: "USDT"},
	},
	"FAI": {
		"bitmart": {pair: "FAI_USDT", quote: "USDT"},
		"bingx":   {pair: "FAI-USDT", quote: "USDT"},
	},
}

// BTCReference is the candidate whose series serves as the denominator for
// derived cross-rates: the primary venue's BTC market.
func BTCReference() VenueCandidate {
	return VenueCandidate{Venue: primaryVenue, Pair: "BTC-USD", Quote: "USD"}
}

// Candidates returns the ordered venue candidates for the asset in the
// requested quote currency. First success wins; an empty result means the
// asset cannot be resolved at all. Pure function of its inputs and the
// tables above.
func Candidates(asset model.AssetSpec, quote string) []VenueCandidate {
	table := listings[asset.Symbol]
	if table == nil {
		// Unlisted assets are assumed to trade on the primary venue under
		// its usual spelling.
		table = map[string]listing{
			primaryVenue: {
				pair:    asset.Symbol + "-USD",
				quote:   "USD",
				btcPair: asset.Symbol + "-BTC",
			},
		}
	}

	venues := fallbacks[asset.Symbol]
	if venues == nil {
		venues = []string{primaryVenue}
	}
	if asset.Venue != "" {
		// Pinned venue: single candidate, no fallback. Failure is terminal.
		venues = []string{asset.Venue}
	}

	out := make([]VenueCandidate, 0, len(venues))
	for _, venue := range venues {
		l, ok := table[venue]
		if !ok {
			continue
		}
		if quote == QuoteBTC {
			if l.btcPair != "" {
				out = append(out, VenueCandidate{Venue: venue, Pair: l.btcPair, Quote: QuoteBTC})
			} else {
				out = append(out, VenueCandidate{Venue: venue, Pair: l.pair, Quote: QuoteBTC, Derived: true})
			}
			continue
		}
		out = append(out, VenueCandidate{Venue: venue, Pair: l.pair, Quote: l.quote})
	}
	return out
}
