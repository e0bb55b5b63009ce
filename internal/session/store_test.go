package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/session"
)

func TestStore_CreateAndWith(t *testing.T) {
	s := session.NewStore(session.Options{})
	defer s.Close()

	token, err := s.Create()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, s.Exists(token))

	err = s.With(token, func(e *session.Entry) error {
		require.NotNil(t, e.Cart)
		assert.True(t, e.Cart.Empty())
		assert.Nil(t, e.Checkout)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_UnknownToken(t *testing.T) {
	s := session.NewStore(session.Options{})
	defer s.Close()

	err := s.With("no-such-session", func(*session.Entry) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_TokensAreUnique(t *testing.T) {
	s := session.NewStore(session.Options{})
	defer s.Close()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.Create()
		require.NoError(t, err)
		require.False(t, seen[token])
		seen[token] = true
	}
	assert.Equal(t, 100, s.Len())
}

func TestStore_SingleSlotGuard(t *testing.T) {
	s := session.NewStore(session.Options{})
	defer s.Close()

	token, err := s.Create()
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := s.With(token, func(*session.Entry) error {
			close(started)
			<-release
			return nil
		})
		assert.NoError(t, err)
	}()

	<-started
	err = s.With(token, func(*session.Entry) error { return nil })
	assert.ErrorIs(t, err, session.ErrOperationInFlight)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	close(release)
	wg.Wait()

	// Slot is free again once the first operation returns.
	err = s.With(token, func(*session.Entry) error { return nil })
	assert.NoError(t, err)
}

func TestStore_GuardIsPerSession(t *testing.T) {
	s := session.NewStore(session.Options{})
	defer s.Close()

	a, err := s.Create()
	require.NoError(t, err)
	b, err := s.Create()
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.With(a, func(*session.Entry) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err = s.With(b, func(*session.Entry) error { return nil })
	assert.NoError(t, err, "sessions must not share the in-flight slot")

	close(release)
	wg.Wait()
}

func TestStore_SimulatedLatency(t *testing.T) {
	s := session.NewStore(session.Options{SimulatedLatency: 20 * time.Millisecond})
	defer s.Close()

	token, err := s.Create()
	require.NoError(t, err)

	start := time.Now()
	err = s.With(token, func(*session.Entry) error { return nil })
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestStore_TTLSweep(t *testing.T) {
	s := session.NewStore(session.Options{
		TTL:           10 * time.Millisecond,
		SweepInterval: 5 * time.Millisecond,
	})
	defer s.Close()

	token, err := s.Create()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return !s.Exists(token)
	}, time.Second, 5*time.Millisecond, "idle session should be evicted after the TTL")
}
