package catalog

import (
	"testing"

	"github.com/meur/pokedex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(records []*models.Creature) *Session {
	cat, _ := New(records)
	return NewSession(cat, NewSeededSampler(1, 1), SessionOptions{InitialCount: 3, RecommendationCount: 3})
}

func TestSessionInitialSampleIsStable(t *testing.T) {
	records := sampleRecords()
	for _, r := range records[:5] {
		withAnimated(r)
	}
	s := newTestSession(records)

	first := s.View()
	assert.True(t, first.Initial)
	require.Len(t, first.Cards, 3)
	for _, c := range first.Cards {
		assert.True(t, c.Sprites.HasAnimated())
	}
	assert.Empty(t, first.Recommendations)

	s.SetSpriteStyle(SpriteStatic3D)
	second := s.View()
	assert.Equal(t, ids(first.Cards), ids(second.Cards), "toggling sprites does not resample")
	assert.Equal(t, SpriteStatic3D, second.SpriteStyle)
}

func TestSessionQueryShowsFullResult(t *testing.T) {
	s := newTestSession(sampleRecords())

	s.SetQuery(Query{Type: "grass"})
	v := s.View()
	assert.False(t, v.Initial)
	assert.Equal(t, []int{1, 152, 251, 252, 906}, ids(v.Cards), "no cap and no sampling after a query")

	s.SetQuery(Query{})
	v = s.View()
	assert.False(t, v.Initial, "initial state never returns")
	assert.Len(t, v.Cards, len(sampleRecords()))
}

func TestSessionRecommendationsOnlyWithoutInput(t *testing.T) {
	s := newTestSession(sampleRecords())

	s.SetQuery(Query{Text: "missingno"})
	v := s.View()
	assert.True(t, v.Empty())
	assert.Empty(t, v.Recommendations, "no recommendations while input is active")

	empty := newTestSession(nil)
	v = empty.View()
	assert.True(t, v.Empty())
	assert.Empty(t, v.Recommendations)
}

func TestSessionRecommendsWhenEmptyAndIdle(t *testing.T) {
	// A session whose filtered view is empty with no input only happens when
	// the catalog changes under it; exercise it through an empty initial sample.
	s := newTestSession(sampleRecords())
	s.sample = nil

	v := s.View()
	assert.True(t, v.Empty())
	require.Len(t, v.Recommendations, 3)
	assertDistinct(t, v.Recommendations)
}

func TestSpriteStyle(t *testing.T) {
	assert.Equal(t, SpriteStatic3D, ParseSpriteStyle("3d"))
	assert.Equal(t, SpriteAnimated2D, ParseSpriteStyle(""))
	assert.Equal(t, SpriteAnimated2D, ParseSpriteStyle("bogus"))
	assert.Equal(t, "3D Static", SpriteStatic3D.Label())
	assert.Equal(t, "2D Animated", SpriteAnimated2D.Label())
	assert.Equal(t, models.SpriteHome, SpriteStatic3D.Order()[0])
	assert.Equal(t, models.SpriteAnimated, SpriteAnimated2D.Order()[0])
}
