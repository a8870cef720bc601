package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var catalog = []string{"tomato", "potato", "rice", "Tomatillo", "chicken"}

func ready() *Picker {
	p := New()
	p.SetCatalog(catalog)
	return p
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		input    string
		want     []string
	}{
		{"case insensitive contains", nil, "TOMA", []string{"tomato", "Tomatillo"}},
		{"excludes selected", []string{"tomato"}, "tom", []string{"Tomatillo"}},
		{"blank input hides list", nil, "   ", nil},
		{"empty input", nil, "", nil},
		{"no match", nil, "xyz", nil},
		{"substring", nil, "ato", []string{"tomato", "potato"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(catalog, tt.selected, tt.input))
		})
	}
}

func TestEnterPicksFirstSuggestion(t *testing.T) {
	p := ready()
	p.SetInput("tom")

	intent := p.HandleKey(KeyEnter, nil)
	assert.Equal(t, Intent{Kind: IntentAdd, Ingredient: "tomato"}, intent)
	assert.Empty(t, p.Input())
	assert.Equal(t, -1, p.Highlight())
}

func TestEnterPicksHighlighted(t *testing.T) {
	p := ready()
	p.SetInput("tom")
	p.HandleKey(KeyDown, nil)
	p.HandleKey(KeyDown, nil)
	assert.Equal(t, 1, p.Highlight())

	intent := p.HandleKey(KeyEnter, nil)
	assert.Equal(t, "Tomatillo", intent.Ingredient)
}

func TestEnterFreeformText(t *testing.T) {
	p := ready()
	p.SetInput("  saffron  ")

	intent := p.HandleKey(KeyEnter, nil)
	assert.Equal(t, Intent{Kind: IntentAdd, Ingredient: "saffron"}, intent)
}

func TestEnterSearchesWhenInputEmpty(t *testing.T) {
	p := ready()
	assert.Equal(t, Intent{Kind: IntentSearch}, p.HandleKey(KeyEnter, []string{"rice"}))
	assert.Equal(t, Intent{}, p.HandleKey(KeyEnter, nil))

	p.SetInput("   ")
	assert.Equal(t, Intent{Kind: IntentSearch}, p.HandleKey(KeyEnter, []string{"rice"}))
}

func TestEnterIgnoresAlreadySelectedFreeform(t *testing.T) {
	p := ready()
	p.SetInput("saffron")
	assert.Equal(t, Intent{}, p.HandleKey(KeyEnter, []string{"saffron"}))
	assert.Equal(t, "saffron", p.Input())
}

func TestHighlightClamps(t *testing.T) {
	p := ready()
	p.SetInput("ric")

	p.HandleKey(KeyDown, nil)
	p.HandleKey(KeyDown, nil)
	p.HandleKey(KeyDown, nil)
	assert.Equal(t, 0, p.Highlight())

	p.HandleKey(KeyUp, nil)
	assert.Equal(t, -1, p.Highlight())
	p.HandleKey(KeyUp, nil)
	assert.Equal(t, -1, p.Highlight())

	// no suggestions: down stays at -1
	p.SetInput("zzz")
	p.HandleKey(KeyDown, nil)
	assert.Equal(t, -1, p.Highlight())
}

func TestInputChangeResetsHighlight(t *testing.T) {
	p := ready()
	p.SetInput("to")
	p.HandleKey(KeyDown, nil)
	assert.Equal(t, 0, p.Highlight())

	p.SetInput("tom")
	assert.Equal(t, -1, p.Highlight())
}

func TestCatalogStates(t *testing.T) {
	p := New()
	assert.Equal(t, CatalogLoading, p.State())
	assert.False(t, p.Enabled())
	assert.Equal(t, "Loading ingredients...", p.Placeholder())

	p.SetInput("ignored")
	assert.Empty(t, p.Input())

	p.SetCatalogFailed()
	assert.Equal(t, "failed", p.State().String())
	assert.True(t, p.Enabled())
	assert.NotEqual(t, "Loading ingredients...", p.Placeholder())

	// freeform entry still works without a catalog
	p.SetInput("basil")
	assert.Empty(t, p.Suggestions(nil))
	assert.Equal(t, Intent{Kind: IntentAdd, Ingredient: "basil"}, p.HandleKey(KeyEnter, nil))
}
