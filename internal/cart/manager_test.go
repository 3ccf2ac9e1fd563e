package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(func(string) Slot { return &fakeSlot{} }, testLogger())

	a := m.Store(ctx, "sess-a")
	b := m.Store(ctx, "sess-b")
	require.NotSame(t, a, b)
	assert.Same(t, a, m.Store(ctx, "sess-a"))
}

func TestManagerIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	m := NewManager(func(string) Slot { return &fakeSlot{} }, testLogger())

	m.Store(ctx, "sess-a").AddItem(ctx, product(1, 10), 2)

	assert.Equal(t, 2, m.Store(ctx, "sess-a").Count())
	assert.Zero(t, m.Store(ctx, "sess-b").Count())
}

func TestManagerBindsSlotToSession(t *testing.T) {
	ctx := context.Background()
	slots := map[string]*fakeSlot{}
	m := NewManager(func(sessionID string) Slot {
		s := &fakeSlot{}
		slots[sessionID] = s
		return s
	}, testLogger())

	m.Store(ctx, "sess-a").AddItem(ctx, product(1, 10), 1)

	require.Contains(t, slots, "sess-a")
	assert.Len(t, slots["sess-a"].saved, 1)
}
