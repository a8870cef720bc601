// Package discovery is the single owner of the recipe discovery page state.
// Child components (picker, detail view) report user actions as intents;
// renderers read immutable snapshots.
package discovery

import (
	"context"
	"sync"

	"github.com/smartchef/smartchef/internal/detail"
	"github.com/smartchef/smartchef/internal/notify"
	"github.com/smartchef/smartchef/internal/picker"
	"github.com/smartchef/smartchef/internal/selection"
	"github.com/smartchef/smartchef/internal/service"
	"github.com/smartchef/smartchef/internal/types"
)

// Phase is the top-level screen
type Phase int

const (
	PhasePicking Phase = iota
	PhaseResults
)

// SearchTicket identifies one dispatched match request
type SearchTicket struct {
	Seq         uint64
	Ingredients []string
}

// SearchResult is the outcome of running a SearchTicket
type SearchResult struct {
	Ticket  SearchTicket
	Matches []types.RecipeMatch
	Err     error
}

// CatalogResult is the outcome of the catalog fetch
type CatalogResult struct {
	Ingredients []string
	Err         error
}

// Snapshot is a read-only copy of the page state
type Snapshot struct {
	Phase       Phase
	Selected    []string
	Input       string
	Placeholder string
	InputReady  bool
	Catalog     picker.CatalogState
	Suggestions []string
	Highlight   int
	Searching   bool
	Results     []types.RecipeMatch
	// SearchedWith is the selection the current results were computed for
	SearchedWith []string
	Detail       detail.View
}

// Page owns selection, autocomplete, results and the open recipe.
type Page struct {
	mu sync.Mutex

	backend  service.BackendAPI
	notifier notify.Notifier

	selection *selection.Selection
	picker    *picker.Picker
	detail    *detail.Controller

	phase        Phase
	results      []types.RecipeMatch
	searchedWith []string
	searching    bool
	searchSeq    uint64
}

// NewPage wires a page over the backend and relay clients.
func NewPage(backend service.BackendAPI, details service.DetailsGenerator, notifier notify.Notifier) *Page {
	if notifier == nil {
		notifier = notify.NewQueue(0)
	}
	return &Page{
		backend:   backend,
		notifier:  notifier,
		selection: selection.New(),
		picker:    picker.New(),
		detail:    detail.NewController(details, backend, notifier),
	}
}

// FetchCatalog loads the ingredient catalog. It does not touch page state.
func (p *Page) FetchCatalog(ctx context.Context) CatalogResult {
	items, err := p.backend.GetIngredients(ctx)
	return CatalogResult{Ingredients: items, Err: err}
}

// ApplyCatalog installs a fetched catalog. A failure leaves the picker in
// freeform mode and notifies.
func (p *Page) ApplyCatalog(r CatalogResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r.Err != nil {
		p.picker.SetCatalogFailed()
		p.notifier.Notify(notify.CatalogFailed())
		return
	}
	p.picker.SetCatalog(r.Ingredients)
}

// LoadCatalog fetches and installs the catalog.
func (p *Page) LoadCatalog(ctx context.Context) {
	p.ApplyCatalog(p.FetchCatalog(ctx))
}

// SetInput updates the autocomplete text
func (p *Page) SetInput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.picker.SetInput(text)
}

// HandleKey forwards a key to the picker and applies the resulting intent. A
// search intent is returned as a ticket for the caller to run.
func (p *Page) HandleKey(key picker.Key) (SearchTicket, bool) {
	p.mu.Lock()
	intent := p.picker.HandleKey(key, p.selection.Items())
	p.mu.Unlock()

	switch intent.Kind {
	case picker.IntentAdd:
		p.AddIngredient(intent.Ingredient)
	case picker.IntentSearch:
		return p.BeginSearch()
	}
	return SearchTicket{}, false
}

// AddIngredient selects an ingredient. Duplicates are ignored.
func (p *Page) AddIngredient(item string) bool {
	return p.selection.Add(item)
}

// RemoveIngredient deselects an ingredient.
func (p *Page) RemoveIngredient(item string) bool {
	return p.selection.Remove(item)
}

// ClearSelection drops every selected ingredient.
func (p *Page) ClearSelection() {
	p.selection.Clear()
}

// BeginSearch issues a search ticket for the current selection. It refuses when
// the selection is empty.
func (p *Page) BeginSearch() (SearchTicket, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := p.selection.Items()
	if len(items) == 0 {
		return SearchTicket{}, false
	}
	p.searchSeq++
	p.searching = true
	return SearchTicket{Seq: p.searchSeq, Ingredients: items}, true
}

// RunSearch calls the backend. It does not touch page state.
func (p *Page) RunSearch(ctx context.Context, t SearchTicket) SearchResult {
	matches, err := p.backend.MatchRecipes(ctx, t.Ingredients)
	return SearchResult{Ticket: t, Matches: matches, Err: err}
}

// FinishSearch applies a search result. Results from superseded tickets are
// dropped; a failure notifies and leaves the previous results in place.
func (p *Page) FinishSearch(r SearchResult) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r.Ticket.Seq != p.searchSeq {
		return false
	}
	p.searching = false
	if r.Err != nil {
		p.notifier.Notify(notify.SearchFailed())
		return true
	}

	p.results = r.Matches
	if p.results == nil {
		p.results = []types.RecipeMatch{}
	}
	p.searchedWith = r.Ticket.Ingredients
	p.phase = PhaseResults
	return true
}

// Search runs a whole search synchronously. It reports whether results were shown.
func (p *Page) Search(ctx context.Context) bool {
	t, ok := p.BeginSearch()
	if !ok {
		return false
	}
	r := p.RunSearch(ctx, t)
	p.FinishSearch(r)
	return r.Err == nil
}

// NewSearch returns to the picker, keeping the selection.
func (p *Page) NewSearch() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.detail.Close()
	p.searchSeq++
	p.searching = false
	p.phase = PhasePicking
	p.results = nil
	p.searchedWith = nil
}

// OpenRecipe opens the result with the given ID. The returned ticket, when
// present, must be run and applied to hydrate the recipe.
func (p *Page) OpenRecipe(id string) (detail.Ticket, bool) {
	p.mu.Lock()
	var found *types.RecipeMatch
	for i := range p.results {
		if p.results[i].ID == id {
			r := p.results[i]
			found = &r
			break
		}
	}
	p.mu.Unlock()

	if found == nil {
		return detail.Ticket{}, false
	}
	return p.detail.Open(*found)
}

// CloseRecipe closes the detail view
func (p *Page) CloseRecipe() {
	p.detail.Close()
}

// RequestInstructions asks for manual instruction generation on the open recipe
func (p *Page) RequestInstructions() (detail.Ticket, bool) {
	return p.detail.RequestInstructions()
}

// RunDetail performs a detail ticket's call without touching state
func (p *Page) RunDetail(ctx context.Context, t detail.Ticket) detail.Result {
	return p.detail.Run(ctx, t)
}

// ApplyDetail folds a detail result into the open recipe if still current
func (p *Page) ApplyDetail(r detail.Result) bool {
	return p.detail.Apply(r)
}

// Snapshot returns a copy of the page state
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	selected := p.selection.Items()
	results := make([]types.RecipeMatch, len(p.results))
	for i, r := range p.results {
		results[i] = r.Clone()
	}

	return Snapshot{
		Phase:        p.phase,
		Selected:     selected,
		Input:        p.picker.Input(),
		Placeholder:  p.picker.Placeholder(),
		InputReady:   p.picker.Enabled(),
		Catalog:      p.picker.State(),
		Suggestions:  p.picker.Suggestions(selected),
		Highlight:    p.picker.Highlight(),
		Searching:    p.searching,
		Results:      results,
		SearchedWith: append([]string(nil), p.searchedWith...),
		Detail:       p.detail.View(),
	}
}
