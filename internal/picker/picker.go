// Package picker implements the ingredient autocomplete and its keyboard contract.
// The picker owns only its input text, highlight and catalog; the selection
// belongs to the caller, and user actions come back as Intents.
package picker

import (
	"strings"
)

const (
	placeholderLoading = "Loading ingredients..."
	placeholderReady   = "Type an ingredient (e.g., tomato, rice, chicken)..."
)

// CatalogState tracks the one-shot ingredient catalog load
type CatalogState int

const (
	CatalogLoading CatalogState = iota
	CatalogReady
	CatalogFailed
)

func (s CatalogState) String() string {
	switch s {
	case CatalogReady:
		return "ready"
	case CatalogFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Key is a navigation key understood by the picker
type Key int

const (
	KeyEnter Key = iota
	KeyUp
	KeyDown
)

// IntentKind says what the parent should do in response to a key
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentAdd
	IntentSearch
)

// Intent is emitted by HandleKey. Ingredient is set for IntentAdd.
type Intent struct {
	Kind       IntentKind
	Ingredient string
}

// Filter returns catalog entries containing input (case-insensitive) that are
// not already selected. Blank input yields nothing.
func Filter(catalog, selected []string, input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	needle := strings.ToLower(input)

	taken := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		taken[s] = struct{}{}
	}

	var out []string
	for _, item := range catalog {
		if _, ok := taken[item]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Picker is the autocomplete state
type Picker struct {
	input     string
	highlight int
	catalog   []string
	state     CatalogState
}

// New returns a picker waiting for its catalog.
func New() *Picker {
	return &Picker{highlight: -1, state: CatalogLoading}
}

// SetCatalog installs the fetched catalog and enables input.
func (p *Picker) SetCatalog(items []string) {
	p.catalog = append([]string(nil), items...)
	p.state = CatalogReady
}

// SetCatalogFailed enables freeform entry with an empty catalog.
func (p *Picker) SetCatalogFailed() {
	p.catalog = nil
	p.state = CatalogFailed
}

func (p *Picker) State() CatalogState { return p.state }

func (p *Picker) Catalog() []string { return append([]string(nil), p.catalog...) }

// Enabled reports whether the input accepts text. It is disabled while the catalog loads.
func (p *Picker) Enabled() bool { return p.state != CatalogLoading }

func (p *Picker) Placeholder() string {
	if p.state == CatalogLoading {
		return placeholderLoading
	}
	return placeholderReady
}

func (p *Picker) Input() string { return p.input }

// SetInput replaces the typed text. Any change resets the highlight.
func (p *Picker) SetInput(text string) {
	if !p.Enabled() || text == p.input {
		return
	}
	p.input = text
	p.highlight = -1
}

// Highlight is the highlighted suggestion index, or -1 for none.
func (p *Picker) Highlight() int { return p.highlight }

// Suggestions returns the current filtered catalog for the given selection.
func (p *Picker) Suggestions(selected []string) []string {
	return Filter(p.catalog, selected, p.input)
}

// HandleKey applies a navigation key and returns what the parent should do.
// An add intent clears the input.
func (p *Picker) HandleKey(key Key, selected []string) Intent {
	suggestions := p.Suggestions(selected)

	switch key {
	case KeyDown:
		if p.highlight < len(suggestions)-1 {
			p.highlight++
		}
		return Intent{}
	case KeyUp:
		if p.highlight > 0 {
			p.highlight--
		} else {
			p.highlight = -1
		}
		return Intent{}
	case KeyEnter:
		var choice string
		switch {
		case p.highlight >= 0 && p.highlight < len(suggestions):
			choice = suggestions[p.highlight]
		case len(suggestions) > 0:
			choice = suggestions[0]
		case strings.TrimSpace(p.input) != "":
			choice = strings.TrimSpace(p.input)
		case len(selected) > 0:
			return Intent{Kind: IntentSearch}
		default:
			return Intent{}
		}
		if contains(selected, choice) {
			return Intent{}
		}
		p.input = ""
		p.highlight = -1
		return Intent{Kind: IntentAdd, Ingredient: choice}
	}
	return Intent{}
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
