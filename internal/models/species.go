package models

// FlavorText is one localized description entry
type FlavorText struct {
	FlavorText string   `json:"flavor_text"`
	Language   NamedRef `json:"language"`
	Version    NamedRef `json:"version"`
}

// Variety references one form of a species
type Variety struct {
	IsDefault bool     `json:"is_default"`
	Pokemon   NamedRef `json:"pokemon"`
}

// Species is the metadata attached to every creature
type Species struct {
	ID                int          `json:"id"`
	Name              string       `json:"name"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	Varieties         []Variety    `json:"varieties"`
}

// LatestFlavorText returns the last entry in the given language.
// ok is false when the species has no entry for it
func (s *Species) LatestFlavorText(language string) (text string, ok bool) {
	if s == nil {
		return "", false
	}
	for i := len(s.FlavorTextEntries) - 1; i >= 0; i-- {
		if e := s.FlavorTextEntries[i]; e.Language.Name == language {
			return e.FlavorText, true
		}
	}
	return "", false
}
