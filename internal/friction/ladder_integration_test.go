//go:build integration

package friction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mek/internal/primitives"
)

// TestRealWaiterBlocksForFullDuration exercises the genuine blocking
// sleep; it is gated behind the integration tag because it takes several
// real seconds to run.
func TestRealWaiterBlocksForFullDuration(t *testing.T) {
	start := time.Now()
	Observe(RealWaiter{}, primitives.ConsequenceMedium, 0.9)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 3*time.Second)
}
