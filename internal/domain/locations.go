package domain

import "strings"

// Storage location tokens. The set is closed: anything else is rejected by
// validation, never coerced.
const (
	LocationICEElectronics    = "ice_electronics"
	LocationElectronicsDrawer = "electronics_drawer"
	LocationPowertrainDrawer  = "powertrain_drawer"
	LocationEVShelf           = "ev_shelf"
)

var locationTokens = map[string]bool{
	LocationICEElectronics:    true,
	LocationElectronicsDrawer: true,
	LocationPowertrainDrawer:  true,
	LocationEVShelf:           true,
}

// ValidLocation reports whether token is a member of the location set.
func ValidLocation(token string) bool {
	return locationTokens[token]
}

// Locations returns the valid location tokens in a stable order.
func Locations() []string {
	return []string{
		LocationICEElectronics,
		LocationElectronicsDrawer,
		LocationPowertrainDrawer,
		LocationEVShelf,
	}
}

// FormatLocation maps a snake_case location token to its display label:
// each underscore-separated word gets its first letter upper-cased and the
// words are joined with single spaces ("ev_shelf" -> "Ev Shelf"). The empty
// token formats to the empty string.
func FormatLocation(token string) string {
	if token == "" {
		return ""
	}
	words := strings.Split(token, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
