package txn

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "caresure/pkg/domain-errors"
)

func TestRunInTx_Serializes(t *testing.T) {
	s := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunInTx(context.Background(), func(context.Context) error {
				// Deliberate read-modify-write; only the serializer makes it safe.
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestRunInTx_CancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.RunInTx(ctx, func(context.Context) error {
		t.Fatal("fn must not run with a cancelled context")
		return nil
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestRunInTx_PropagatesError(t *testing.T) {
	s := New(WithTimeout(time.Second))
	want := dErrors.New(dErrors.CodeConflict, "boom")

	err := s.RunInTx(context.Background(), func(context.Context) error {
		return want
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}
