package tui

import (
	"github.com/smartchef/smartchef/internal/detail"
	"github.com/smartchef/smartchef/internal/discovery"
	"github.com/smartchef/smartchef/internal/probe"
)

// catalogLoaded carries the ingredient catalog fetch result.
type catalogLoaded struct {
	Result discovery.CatalogResult
}

// searchCompleted carries a match request result.
type searchCompleted struct {
	Result discovery.SearchResult
}

// detailCompleted carries a hydration or instruction generation result.
type detailCompleted struct {
	Result detail.Result
}

// probeUpdated carries a warm-up probe state change.
type probeUpdated struct {
	Update probe.Update
}

// probeFinished is sent once the probe goroutine exits.
type probeFinished struct{}

// toastTick refreshes expiring notifications.
type toastTick struct{}
