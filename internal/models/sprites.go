package models

// SpriteVariant names one of the image presentations a creature may expose
type SpriteVariant string

const (
	SpriteAnimated        SpriteVariant = "animated"
	SpriteHome            SpriteVariant = "home"
	SpriteOfficialArtwork SpriteVariant = "official-artwork"
	SpriteDefault         SpriteVariant = "default"
)

type spriteFront struct {
	FrontDefault string `json:"front_default"`
}

// Sprites mirrors the subset of the upstream sprite tree the browser uses.
// Missing upstream values decode to empty strings
type Sprites struct {
	FrontDefault string `json:"front_default"`
	Other        struct {
		Home            spriteFront `json:"home"`
		OfficialArtwork spriteFront `json:"official-artwork"`
	} `json:"other"`
	Versions struct {
		GenerationV struct {
			BlackWhite struct {
				Animated spriteFront `json:"animated"`
			} `json:"black-white"`
		} `json:"generation-v"`
	} `json:"versions"`
}

// URL returns the reference for variant, or "" if the creature lacks it
func (s Sprites) URL(variant SpriteVariant) string {
	switch variant {
	case SpriteAnimated:
		return s.Versions.GenerationV.BlackWhite.Animated.FrontDefault
	case SpriteHome:
		return s.Other.Home.FrontDefault
	case SpriteOfficialArtwork:
		return s.Other.OfficialArtwork.FrontDefault
	case SpriteDefault:
		return s.FrontDefault
	}
	return ""
}

// First returns the first non-empty reference in the given order
func (s Sprites) First(order ...SpriteVariant) string {
	for _, v := range order {
		if u := s.URL(v); u != "" {
			return u
		}
	}
	return ""
}

// HasAnimated reports whether the animated variant is present
func (s Sprites) HasAnimated() bool {
	return s.URL(SpriteAnimated) != ""
}
