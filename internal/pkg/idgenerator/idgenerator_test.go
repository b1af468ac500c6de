package idgenerator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestId(t *testing.T) {
	t.Parallel()
	assert.Len(t, RequestId(), RequestIdLength)
	assert.NotEqual(t, RequestId(), RequestId())
}

func TestEphemeralIdRange(t *testing.T) {
	t.Parallel()
	g := NewEphemeralIds()
	for i := 0; i < 1000; i++ {
		id := int(g.EphemeralId())
		assert.GreaterOrEqual(t, id, EphemeralIdMin)
		assert.LessOrEqual(t, id, EphemeralIdMax)
	}
}

func TestEphemeralIdDeterministicSeed(t *testing.T) {
	t.Parallel()
	g1 := NewEphemeralIdsWithSeed(123)
	g2 := NewEphemeralIdsWithSeed(123)
	for i := 0; i < 100; i++ {
		assert.Equal(t, g1.EphemeralId(), g2.EphemeralId())
	}
}
