package friction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mek/internal/primitives"
)

type recordingWaiter struct {
	waited time.Duration
}

func (r *recordingWaiter) Wait(d time.Duration) { r.waited = d }

func TestRequiredByConsequence(t *testing.T) {
	assert.Equal(t, 10*time.Second, Required(primitives.ConsequenceHigh, 0.9))
	assert.Equal(t, 3*time.Second, Required(primitives.ConsequenceMedium, 0.9))
	assert.Equal(t, 0*time.Second, Required(primitives.ConsequenceLow, 0.9))
}

func TestRequiredAddsLowConfidencePenalty(t *testing.T) {
	assert.Equal(t, 15*time.Second, Required(primitives.ConsequenceHigh, 0.5))
	assert.Equal(t, 5*time.Second, Required(primitives.ConsequenceLow, 0.1))
}

func TestObserveUsesSuppliedWaiter(t *testing.T) {
	w := &recordingWaiter{}
	d := Observe(w, primitives.ConsequenceMedium, 0.9)
	assert.Equal(t, 3*time.Second, d)
	assert.Equal(t, 3*time.Second, w.waited)
}
