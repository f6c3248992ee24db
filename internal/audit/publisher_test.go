package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_EmitSync(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	err := p.Emit(context.Background(), Event{
		Action:   ActionClaimApproved,
		Entity:   EntityClaim,
		EntityID: 7,
	})
	require.NoError(t, err)

	events, err := p.List(context.Background(), EntityClaim, 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionClaimApproved, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "Emit must default the timestamp")
}

func TestPublisher_EmitAsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store, WithAsyncBuffer(16))

	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, p.Emit(context.Background(), Event{
			Action:    ActionEndorsementRecorded,
			Entity:    EntityHospital,
			EntityID:  1,
			RelatedID: i,
		}))
	}
	p.Close()

	events, err := store.ListByEntity(context.Background(), EntityHospital, 1)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestInMemoryStore_FiltersByEntity(t *testing.T) {
	store := NewInMemoryStore()
	now := time.Now()
	_ = store.Append(context.Background(), Event{Timestamp: now, Entity: EntityPolicy, EntityID: 1})
	_ = store.Append(context.Background(), Event{Timestamp: now, Entity: EntityPolicy, EntityID: 2})
	_ = store.Append(context.Background(), Event{Timestamp: now, Entity: EntityClaim, EntityID: 1})

	events, err := store.ListByEntity(context.Background(), EntityPolicy, 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Len(t, store.All(), 3)
}
