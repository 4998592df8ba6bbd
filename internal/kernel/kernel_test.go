package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mek/internal/evidence"
	"mek/internal/guard"
	"mek/internal/primitives"
)

type noopWaiter struct{}

func (noopWaiter) Wait(time.Duration) {}

func TestKernelExecuteHappyPathAppendsEvidence(t *testing.T) {
	k := New(nil, nil, "bundle-1", 0, WithClock(primitives.NewFixedClock(0)), WithFrictionWaiter(noopWaiter{}))

	descriptor := primitives.NewContractDescriptor("greet", primitives.ConsequenceLow, nil, false)
	contract := guard.NewContract(descriptor, func(ctx primitives.Context, intent primitives.Intent) (any, error) {
		return "ok", nil
	})
	require.NoError(t, k.Guard().Register(contract))

	grant := primitives.NewGrant("g1", "alice", "greet", nil, 0, 0, 0, 0)
	require.NoError(t, k.Guard().AuthorityStore().Issue(grant))

	ctx, _ := primitives.NewContext("ctx1", "alice", 0)
	intent, _ := primitives.NewIntent("greet", 0.9, nil)

	result, fr := k.Execute(ctx, intent, "g1", nil)
	require.Nil(t, fr)
	require.NotNil(t, result)

	bundle := k.EvidenceBundle()
	require.Len(t, bundle.Elements, 1)
	assert.NoError(t, evidence.Verify(bundle))
}

func TestKernelExecuteFailureAppendsEvidence(t *testing.T) {
	k := New(nil, nil, "bundle-1", 0, WithClock(primitives.NewFixedClock(0)), WithFrictionWaiter(noopWaiter{}))

	ctx, _ := primitives.NewContext("ctx1", "alice", 0)
	intent, _ := primitives.NewIntent("ghost", 0.9, nil)
	result, fr := k.Execute(ctx, intent, "missing", nil)
	require.Nil(t, result)
	require.NotNil(t, fr)

	bundle := k.EvidenceBundle()
	require.Len(t, bundle.Elements, 1)
	assert.Equal(t, "failure", bundle.Elements[0].Kind)
}
