package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGuard(kv *mocks.MockKeyValueStore, maxFailures int) *Guard {
	return NewGuard(kv, GuardConfig{
		Backend: "test",
		Timeout: time.Second,
		Breaker: BreakerConfig{MaxFailures: maxFailures, Timeout: time.Minute, HalfOpenLimit: 1},
	}, discardLogger())
}

func TestGuard_PassesThrough(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Set(mock.Anything, "k", "v").Return(nil)
	kv.EXPECT().Get(mock.Anything, "k").Return("v", nil)
	kv.EXPECT().Delete(mock.Anything, "k").Return(nil)

	g := newTestGuard(kv, 3)

	require.NoError(t, g.Set(ctx, "k", "v"))

	v, err := g.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, g.Delete(ctx, "k"))
	assert.Equal(t, StateClosed, g.CircuitState())
}

func TestGuard_AppliesTimeout(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Get(mock.Anything, "k").RunAndReturn(func(ctx context.Context, _ string) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "backend call should carry a deadline")

		return "v", nil
	})

	_, err := newTestGuard(kv, 3).Get(context.Background(), "k")
	require.NoError(t, err)
}

func TestGuard_NotFoundDoesNotTrip(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Get(mock.Anything, "missing").Return("", domain.NewNotFoundError("key", "missing")).Times(3)

	g := newTestGuard(kv, 1)

	for range 3 {
		_, err := g.Get(context.Background(), "missing")
		assert.True(t, domain.IsNotFound(err))
	}

	assert.Equal(t, StateClosed, g.CircuitState())
}

func TestGuard_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Set(mock.Anything, "k", "v").Return(boom).Times(2)

	g := newTestGuard(kv, 2)

	for range 2 {
		err := g.Set(ctx, "k", "v")
		require.ErrorIs(t, err, boom)
	}

	assert.Equal(t, StateOpen, g.CircuitState())

	err := g.Set(ctx, "k", "v")
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err), "open circuit short-circuits without calling the backend")

	checkErr := g.Check(ctx)
	assert.True(t, domain.IsUnavailable(checkErr))
}

func TestGuard_Name(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)

	assert.Equal(t, "storage-test", newTestGuard(kv, 1).Name())

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	g := NewGuard(fs, GuardConfig{Backend: "file", Breaker: BreakerConfig{MaxFailures: 1, Timeout: time.Second, HalfOpenLimit: 1}}, discardLogger())
	assert.Equal(t, "storage-file", g.Name())
	assert.NoError(t, g.Check(context.Background()))
}

func TestGuard_Close(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Close().Return(nil)

	require.NoError(t, newTestGuard(kv, 1).Close())
}
