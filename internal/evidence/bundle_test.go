package evidence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChainsHashes(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	e1 := b.Append("result", map[string]any{"capability": "greet"})
	e2 := b.Append("failure", map[string]any{"type": "MISSING_GRANT"})

	require.NotEqual(t, e1.Hash, e2.Hash)
	bundle := b.Bundle()
	assert.Equal(t, e2.Hash, bundle.RootHash)
	assert.Len(t, bundle.Elements, 2)
}

func TestVerifySucceedsOnUnmodifiedBundle(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	b.Append("result", map[string]any{"capability": "greet"})
	b.Append("failure", map[string]any{"type": "MISSING_GRANT"})

	err := Verify(b.Bundle())
	assert.NoError(t, err)
}

func TestVerifyDetectsTamperedPayload(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	b.Append("result", map[string]any{"capability": "greet"})
	bundle := b.Bundle()

	bundle.Elements[0].Payload = map[string]any{"capability": "tampered"}
	err := Verify(bundle)
	assert.ErrorIs(t, err, ErrChainBroken)
}

func TestVerifyDetectsReorderedElements(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	b.Append("a", map[string]any{"x": 1})
	b.Append("b", map[string]any{"x": 2})
	bundle := b.Bundle()

	bundle.Elements[0], bundle.Elements[1] = bundle.Elements[1], bundle.Elements[0]
	bundle.Elements[0].Sequence, bundle.Elements[1].Sequence = 0, 1
	err := Verify(bundle)
	assert.ErrorIs(t, err, ErrChainBroken)
}

func TestVerifyEmptyBundle(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	err := Verify(b.Bundle())
	assert.NoError(t, err)
}

func TestExportImportRoundTrips(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	b.Append("result", map[string]any{"capability": "greet"})
	b.Append("failure", map[string]any{"type": "MISSING_GRANT"})
	original := b.Bundle()

	data, err := Export(original)
	require.NoError(t, err)

	restored, err := Import(data)
	require.NoError(t, err)

	if diff := cmp.Diff(original, restored); diff != "" {
		t.Errorf("round-tripped bundle differs from original (-want +got):\n%s", diff)
	}
	assert.Equal(t, VerifyOK, VerifyBytes(data))
}

func TestVerifyBytesDetectsFlippedBit(t *testing.T) {
	b := NewBuilder("bundle-1", 100, nil)
	b.Append("result", map[string]any{"capability": "greet"})
	data, err := Export(b.Bundle())
	require.NoError(t, err)

	tampered := append([]byte(nil), data...)
	for i, c := range tampered {
		if c == 'g' {
			tampered[i] = 'G'
			break
		}
	}

	assert.Equal(t, VerifyMismatch, VerifyBytes(tampered))
}

func TestVerifyBytesDetectsMalformedInput(t *testing.T) {
	assert.Equal(t, VerifyMalformed, VerifyBytes([]byte("not: [valid yaml: :::")))
	assert.Equal(t, VerifyMalformed, VerifyBytes(nil))
}
