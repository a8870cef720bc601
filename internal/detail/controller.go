// Package detail manages the open recipe view and its AI hydration.
//
// Network work is split from state changes: Open and RequestInstructions hand
// out tickets, Run performs the call without touching state, and Apply folds
// the result back in only if the ticket still names the open session.
package detail

import (
	"context"
	"sync"

	"github.com/smartchef/smartchef/internal/notify"
	"github.com/smartchef/smartchef/internal/service"
	"github.com/smartchef/smartchef/internal/types"
)

// Purpose says which call a ticket is for
type Purpose int

const (
	PurposeHydrate Purpose = iota
	PurposeInstructions
)

func (p Purpose) String() string {
	if p == PurposeInstructions {
		return "instructions"
	}
	return "hydrate"
}

// Ticket identifies one dispatched call. RecipeName and Ingredients are
// captured at dispatch time.
type Ticket struct {
	Generation  uint64
	RecipeID    string
	Purpose     Purpose
	RecipeName  string
	Ingredients []string
}

// Result is the outcome of running a ticket
type Result struct {
	Ticket       Ticket
	Details      *types.RecipeDetails
	Instructions []string
	Err          error
}

// InstructionsGenerator is the backend call behind "Generate Instructions"
type InstructionsGenerator interface {
	GenerateInstructions(ctx context.Context, recipeID, recipeName string, ingredients []string) ([]string, error)
}

// View is a snapshot of the detail state
type View struct {
	Open                   bool
	Recipe                 types.RecipeMatch
	Hydrating              bool
	GeneratingInstructions bool
}

// Controller owns the open recipe and its overlay.
type Controller struct {
	mu           sync.Mutex
	details      service.DetailsGenerator
	instructions InstructionsGenerator
	notifier     notify.Notifier

	generation             uint64
	open                   bool
	recipe                 types.RecipeMatch
	hydrating              bool
	generatingInstructions bool
}

// NewController creates a controller. notifier receives failure and success toasts.
func NewController(details service.DetailsGenerator, instructions InstructionsGenerator, notifier notify.Notifier) *Controller {
	return &Controller{
		details:      details,
		instructions: instructions,
		notifier:     notifier,
	}
}

// Open starts a new session for recipe. When the recipe lacks a description or
// instructions it returns a hydration ticket.
func (c *Controller) Open(recipe types.RecipeMatch) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.open = true
	c.recipe = recipe.Clone()
	c.hydrating = false
	c.generatingInstructions = false

	if !c.recipe.NeedsHydration() {
		return Ticket{}, false
	}
	c.hydrating = true
	return c.ticketLocked(PurposeHydrate), true
}

// Close ends the session. Any response still in flight is dropped on arrival.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.open = false
	c.recipe = types.RecipeMatch{}
	c.hydrating = false
	c.generatingInstructions = false
}

// RequestInstructions returns an instructions ticket when a recipe is open, has
// no instructions, is not hydrating, and no instruction request is in flight.
func (c *Controller) RequestInstructions() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || c.recipe.HasInstructions() || c.hydrating || c.generatingInstructions {
		return Ticket{}, false
	}
	c.generatingInstructions = true
	return c.ticketLocked(PurposeInstructions), true
}

func (c *Controller) ticketLocked(p Purpose) Ticket {
	return Ticket{
		Generation:  c.generation,
		RecipeID:    c.recipe.ID,
		Purpose:     p,
		RecipeName:  c.recipe.DisplayTitle(),
		Ingredients: append([]string{}, c.recipe.Ingredients...),
	}
}

// Run performs the call a ticket stands for. It does not touch controller state.
func (c *Controller) Run(ctx context.Context, t Ticket) Result {
	if t.Purpose == PurposeInstructions {
		return c.GenerateInstructions(ctx, t)
	}
	return c.Hydrate(ctx, t)
}

// Hydrate asks the relay for the recipe's details
func (c *Controller) Hydrate(ctx context.Context, t Ticket) Result {
	details, err := c.details.GenerateDetails(ctx, t.RecipeName, t.Ingredients)
	return Result{Ticket: t, Details: details, Err: err}
}

// GenerateInstructions asks the backend for cooking steps
func (c *Controller) GenerateInstructions(ctx context.Context, t Ticket) Result {
	steps, err := c.instructions.GenerateInstructions(ctx, t.RecipeID, t.RecipeName, t.Ingredients)
	return Result{Ticket: t, Instructions: steps, Err: err}
}

// Apply folds r into the open session. It reports false, changing nothing, when
// the session has moved on since the ticket was issued.
func (c *Controller) Apply(r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || r.Ticket.Generation != c.generation || r.Ticket.RecipeID != c.recipe.ID {
		return false
	}

	switch r.Ticket.Purpose {
	case PurposeHydrate:
		c.hydrating = false
		if r.Err != nil || r.Details == nil {
			c.notify(notify.DetailsFailed())
			return true
		}
		c.recipe = c.recipe.Merge(r.Details)
	case PurposeInstructions:
		c.generatingInstructions = false
		if r.Err != nil {
			c.notify(notify.InstructionsFailed())
			return true
		}
		c.recipe = c.recipe.WithInstructions(r.Instructions)
		c.notify(notify.InstructionsReady())
	}
	return true
}

// View returns a snapshot of the detail state
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Open:                   c.open,
		Recipe:                 c.recipe.Clone(),
		Hydrating:              c.hydrating,
		GeneratingInstructions: c.generatingInstructions,
	}
}

func (c *Controller) notify(n notify.Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
