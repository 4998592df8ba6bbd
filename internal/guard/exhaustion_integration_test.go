//go:build integration

package guard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mek/internal/authority"
	"mek/internal/primitives"
)

// TestConcurrentExhaustionGrantsExactlyMaxUsesWinners exercises a 10-way
// concurrent race against a single-use grant; it is gated behind the
// integration tag because it spins up real goroutines racing a shared
// grant rather than asserting on sequential calls.
func TestConcurrentExhaustionGrantsExactlyMaxUsesWinners(t *testing.T) {
	clk := primitives.NewFixedClock(0)
	authStore := authority.NewStore(clk, nil)
	g := New(Config{AuthorityStore: authStore, Clock: clk, Waiter: noopWaiterForIntegration{}})

	require.NoError(t, g.Register(echoContract("spend", primitives.ConsequenceLow, false)))
	grant := primitives.NewGrant("g1", "alice", "spend", nil, 0, 0, 3, 0)
	require.NoError(t, g.AuthorityStore().Issue(grant))

	const workers = 10
	var wg sync.WaitGroup
	wins := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ctx, _ := primitives.NewContext("ctx", "alice", 0)
			intent, _ := primitives.NewIntent("spend", 0.9, nil)
			_, fr := g.Execute(ctx, intent, "g1", nil)
			wins[idx] = fr == nil
		}(i)
	}
	wg.Wait()

	count := 0
	for _, w := range wins {
		if w {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

type noopWaiterForIntegration struct{}

func (noopWaiterForIntegration) Wait(time.Duration) {}
