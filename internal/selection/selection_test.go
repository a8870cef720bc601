package selection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsIdempotent(t *testing.T) {
	s := New()
	assert.True(t, s.Add("eggs"))
	assert.True(t, s.Add("milk"))
	assert.False(t, s.Add("eggs"))

	assert.Equal(t, []string{"eggs", "milk"}, s.Items())
	assert.Equal(t, 2, s.Len())
}

func TestAddIsCaseSensitive(t *testing.T) {
	s := New("Eggs")
	assert.True(t, s.Add("eggs"))
	assert.Equal(t, []string{"Eggs", "eggs"}, s.Items())
}

func TestRemove(t *testing.T) {
	s := New("a", "b", "c", "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.Items())

	assert.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))
	assert.False(t, s.Contains("b"))
	assert.Equal(t, []string{"a", "c"}, s.Items())

	// re-adding goes to the end
	s.Add("b")
	assert.Equal(t, []string{"a", "c", "b"}, s.Items())
}

func TestItemsReturnsCopy(t *testing.T) {
	s := New("a")
	items := s.Items()
	items[0] = "z"
	assert.Equal(t, []string{"a"}, s.Items())
}

func TestClear(t *testing.T) {
	s := New("a", "b")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
	assert.True(t, s.Add("a"))
}

func TestZeroValueUsable(t *testing.T) {
	var s Selection
	assert.True(t, s.Add("salt"))
	assert.True(t, s.Contains("salt"))
}

func TestConcurrentAdd(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("same")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}
