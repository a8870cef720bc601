package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueNotifyAndDismiss(t *testing.T) {
	q := NewQueue(time.Minute)
	q.Notify(SearchFailed())
	q.Notify(InstructionsReady())

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "Error finding recipes", active[0].Title)
	assert.Equal(t, VariantDestructive, active[0].Variant)
	assert.Equal(t, VariantDefault, active[1].Variant)
	assert.NotEmpty(t, active[0].ID)

	assert.True(t, q.Dismiss(active[0].ID))
	assert.False(t, q.Dismiss(active[0].ID))

	latest, ok := q.Latest()
	require.True(t, ok)
	assert.Equal(t, "Instructions generated!", latest.Title)
}

func TestQueueExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q := NewQueue(5 * time.Second)
	q.now = func() time.Time { return now }

	q.Notify(DetailsFailed())
	assert.Len(t, q.Active(), 1)

	now = now.Add(6 * time.Second)
	assert.Empty(t, q.Active())
	_, ok := q.Latest()
	assert.False(t, ok)
}

func TestQueueLimit(t *testing.T) {
	q := NewQueue(0)
	for i := 0; i < 8; i++ {
		q.Notify(Notification{Title: string(rune('a' + i))})
	}
	active := q.Active()
	require.Len(t, active, 5)
	assert.Equal(t, "d", active[0].Title)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(CatalogFailed())
	r.Notify(InstructionsFailed())
	assert.Equal(t, []string{"Error loading ingredients", "Failed to generate instructions"}, r.Titles())
	assert.Len(t, r.All(), 2)
}
