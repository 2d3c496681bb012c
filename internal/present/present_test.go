package present

import (
	"strings"
	"testing"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charizard() *models.Creature {
	c := &models.Creature{
		ID:   6,
		Name: "charizard",
		Types: []models.TypeSlot{
			{Slot: 1, Type: models.NamedRef{Name: "fire"}},
			{Slot: 2, Type: models.NamedRef{Name: "flying"}},
		},
		Stats: []models.StatSlot{
			{BaseStat: 78, Stat: models.NamedRef{Name: "hp"}},
			{BaseStat: 109, Stat: models.NamedRef{Name: "special-attack"}},
			{BaseStat: 255, Stat: models.NamedRef{Name: "special-defense"}},
			{BaseStat: 300, Stat: models.NamedRef{Name: "speed"}},
		},
		Abilities: []models.AbilitySlot{
			{Ability: models.NamedRef{Name: "blaze"}},
			{Ability: models.NamedRef{Name: "solar-power"}, IsHidden: true},
		},
		Species: &models.Species{
			FlavorTextEntries: []models.FlavorText{
				{FlavorText: "Old\nentry.", Language: models.NamedRef{Name: "en"}},
				{FlavorText: "Spits fire that\fis hot enough\nto melt <b>boulders</b>.", Language: models.NamedRef{Name: "en"}},
				{FlavorText: "Crache du feu.", Language: models.NamedRef{Name: "fr"}},
			},
			Varieties: []models.Variety{
				{IsDefault: true, Pokemon: models.NamedRef{Name: "charizard"}},
				{Pokemon: models.NamedRef{Name: "charizard-mega-x"}},
			},
		},
	}
	c.Sprites.FrontDefault = "front.png"
	c.Sprites.Other.Home.FrontDefault = "home.png"
	c.Sprites.Versions.GenerationV.BlackWhite.Animated.FrontDefault = "anim.gif"
	return c
}

func TestNewCard(t *testing.T) {
	c := charizard()

	card := NewCard(c, catalog.SpriteAnimated2D)
	assert.Equal(t, "#006", card.Number)
	assert.Equal(t, "anim.gif", card.ImageURL)
	assert.Equal(t, "front.png", card.FallbackURL)
	assert.Equal(t, "fire", card.PrimaryType)
	assert.Equal(t, []string{"fire", "flying"}, card.Types)
	assert.True(t, card.HasForms)

	assert.Equal(t, "home.png", NewCard(c, catalog.SpriteStatic3D).ImageURL)
}

func TestSpriteFallbackChains(t *testing.T) {
	c := &models.Creature{ID: 1, Name: "x"}
	c.Sprites.Other.OfficialArtwork.FrontDefault = "art.png"
	c.Sprites.Other.Home.FrontDefault = "home.png"

	assert.Equal(t, "art.png", SpriteURL(c, catalog.SpriteAnimated2D))
	assert.Equal(t, "home.png", SpriteURL(c, catalog.SpriteStatic3D))

	bare := &models.Creature{ID: 2, Name: "y"}
	bare.Sprites.FrontDefault = "front.png"
	assert.Equal(t, "front.png", NewCard(bare, catalog.SpriteStatic3D).ImageURL)
	assert.Equal(t, "", NewCard(&models.Creature{ID: 3}, catalog.SpriteStatic3D).ImageURL)
}

func TestNumberPadding(t *testing.T) {
	assert.Equal(t, "#001", Number(1))
	assert.Equal(t, "#025", Number(25))
	assert.Equal(t, "#1025", Number(1025))
}

func TestNewDetail(t *testing.T) {
	d := NewDetail(charizard(), catalog.SpriteAnimated2D)

	assert.Equal(t, []Ability{{Name: "blaze"}, {Name: "solar power", Hidden: true}}, d.Abilities)

	require.Len(t, d.Stats, 4)
	assert.Equal(t, "special attack", d.Stats[1].Name)
	assert.InDelta(t, 78.0/255.0*100, d.Stats[0].Width, 1e-9)
	assert.Equal(t, 100.0, d.Stats[2].Width)
	assert.Equal(t, 100.0, d.Stats[3].Width, "bar width is capped")

	assert.Equal(t, "Spits fire that is hot enough to melt boulders.", d.Entry)
}

func TestEntryFallbacks(t *testing.T) {
	assert.Equal(t, "No Pokédex entry available.", Entry(nil))
	assert.Equal(t, "No Pokédex entry available.", Entry(&models.Species{}))
	assert.Equal(t, "No English Pokédex entry found.", Entry(&models.Species{
		FlavorTextEntries: []models.FlavorText{{FlavorText: "x", Language: models.NamedRef{Name: "de"}}},
	}))
	assert.Equal(t, "It's a Pokémon.", Entry(&models.Species{
		FlavorTextEntries: []models.FlavorText{{FlavorText: "It's a\nPokémon.", Language: models.NamedRef{Name: "en"}}},
	}))
}

func TestStatColor(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "#8bac0f"},
		{59, "#8bac0f"},
		{60, "#9bbc0f"},
		{99, "#9bbc0f"},
		{100, "#cadc9f"},
		{129, "#cadc9f"},
		{130, "#c0c0c0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatColor(tt.value), "value %d", tt.value)
	}
}

func TestFormLabels(t *testing.T) {
	base := charizard()
	forms := []*models.Creature{
		{ID: 6, Name: "charizard", IsDefault: true},
		{ID: 10034, Name: "charizard-mega-x"},
		{ID: 10196, Name: "charizard-gmax"},
	}

	cards := FormCards(base, forms, catalog.SpriteAnimated2D)
	require.Len(t, cards, 3)
	assert.Equal(t, "Default", cards[0].Label)
	assert.Equal(t, "mega x", cards[1].Label)
	assert.Equal(t, "gmax", cards[2].Label)
	assert.Equal(t, "Forms of charizard", FormsTitle(base))
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []Option{{Value: "fire", Label: "Fire"}, {Value: "water", Label: "Water"}},
		TypeOptions([]string{"fire", "water"}))

	gens := GenerationOptions(models.Generations())
	require.Len(t, gens, 9)
	assert.Equal(t, Option{Value: "1", Label: "Gen 1"}, gens[0])
}

func TestMarkdown(t *testing.T) {
	md := Markdown(NewDetail(charizard(), catalog.SpriteAnimated2D))

	assert.True(t, strings.HasPrefix(md, "# charizard (#006)"))
	assert.Contains(t, md, "solar power (Hidden)")
	assert.Contains(t, md, "| special attack | 109 |")
	assert.Contains(t, md, "melt boulders")
}
