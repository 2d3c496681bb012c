package catalog

import (
	"github.com/meur/pokedex/internal/models"
)

// SpriteStyle is the image-variant preference of a browsing session
type SpriteStyle string

const (
	SpriteAnimated2D SpriteStyle = "2d"
	SpriteStatic3D   SpriteStyle = "3d"
)

// ParseSpriteStyle accepts "2d"/"3d"; anything else means the default 2D style
func ParseSpriteStyle(s string) SpriteStyle {
	if s == string(SpriteStatic3D) {
		return SpriteStatic3D
	}
	return SpriteAnimated2D
}

// Label is the toggle caption
func (s SpriteStyle) Label() string {
	if s == SpriteStatic3D {
		return "3D Static"
	}
	return "2D Animated"
}

// Order is the sprite fallback chain for the style
func (s SpriteStyle) Order() []models.SpriteVariant {
	if s == SpriteStatic3D {
		return []models.SpriteVariant{models.SpriteHome, models.SpriteOfficialArtwork, models.SpriteAnimated, models.SpriteDefault}
	}
	return []models.SpriteVariant{models.SpriteAnimated, models.SpriteOfficialArtwork, models.SpriteHome, models.SpriteDefault}
}

// View is what a session currently displays
type View struct {
	Cards           []*models.Creature
	Recommendations []*models.Creature
	Query           Query
	SpriteStyle     SpriteStyle
	Initial         bool
}

// Empty reports whether no cards are shown
func (v View) Empty() bool {
	return len(v.Cards) == 0
}

// SessionOptions sizes the random samples
type SessionOptions struct {
	InitialCount        int
	RecommendationCount int
}

// Session is the state of one browsing client: its query, its sprite
// preference and whether it is still showing the first-load sample.
// A Session is not safe for concurrent use
type Session struct {
	catalog *Catalog
	sampler *Sampler
	opts    SessionOptions

	query   Query
	style   SpriteStyle
	initial bool
	sample  []*models.Creature
}

// NewSession starts a session in the initial state. The initial sample is
// drawn once here and reused until the first query
func NewSession(cat *Catalog, sampler *Sampler, opts SessionOptions) *Session {
	s := &Session{
		catalog: cat,
		sampler: sampler,
		opts:    opts,
		style:   SpriteAnimated2D,
		initial: true,
	}
	s.sample = sampler.Initial(cat.Records(), opts.InitialCount)
	return s
}

// SetQuery applies search/filter input and leaves the initial state for good
func (s *Session) SetQuery(q Query) {
	s.query = q
	s.initial = false
	s.sample = nil
}

// SetSpriteStyle changes the image preference without resampling
func (s *Session) SetSpriteStyle(style SpriteStyle) {
	s.style = style
}

// SpriteStyle returns the current preference
func (s *Session) SpriteStyle() SpriteStyle {
	return s.style
}

// Query returns the current query
func (s *Session) Query() Query {
	return s.query
}

// Initial reports whether the session still shows the first-load sample
func (s *Session) Initial() bool {
	return s.initial
}

// View computes the cards to display. Recommendations are drawn only when
// nothing matched and the user has not entered any input
func (s *Session) View() View {
	v := View{
		Query:       s.query,
		SpriteStyle: s.style,
		Initial:     s.initial,
	}

	if s.initial {
		v.Cards = s.sample
	} else {
		v.Cards = Filter(s.catalog.Records(), s.query)
	}

	if v.Empty() && (s.initial || !s.query.Active()) {
		v.Recommendations = s.sampler.Recommend(s.catalog.Records(), s.opts.RecommendationCount)
	}
	return v
}
