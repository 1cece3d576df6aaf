package model

// AssetSpec describes one tracked asset. Specs are immutable configuration,
// loaded once at startup.
type AssetSpec struct {
	// Symbol is the base asset symbol, e.g. "BTC" or "NATIX".
	Symbol string `yaml:"symbol"`
	// Chain is an informational chain annotation ("solana", "base", ...).
	// It is displayed as-is and never interpreted.
	Chain string `yaml:"chain,omitempty"`
	// Venue optionally pins the asset to a single venue, bypassing the
	// fallback chain entirely.
	Venue string `yaml:"venue,omitempty"`
}
