// nolint: gochecknoglobals
package idgenerator

import (
	"math/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/qtmops/coco-cloner/internal/pkg/model"
)

const (
	RequestIdLength = 15

	// Ephemeral module IDs are 6-digit integers.
	EphemeralIdMin = 100000
	EphemeralIdMax = 999999
)

// alphabet used in ID generation.
var alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func RequestId() string {
	return gonanoid.MustGenerate(alphabet, RequestIdLength)
}

// EphemeralIds draws uniformly distributed 6-digit module IDs.
// Draws are independent, collisions are not checked, the probability is
// negligible for the tens of modules a configuration holds.
type EphemeralIds struct {
	rnd *rand.Rand
}

func NewEphemeralIds() *EphemeralIds {
	return NewEphemeralIdsWithSeed(time.Now().UnixNano())
}

// NewEphemeralIdsWithSeed creates a deterministic generator for tests.
func NewEphemeralIdsWithSeed(seed int64) *EphemeralIds {
	return &EphemeralIds{rnd: rand.New(rand.NewSource(seed))} // nolint: gosec
}

func (g *EphemeralIds) EphemeralId() model.ModuleId {
	return model.ModuleId(EphemeralIdMin + g.rnd.Intn(EphemeralIdMax-EphemeralIdMin+1))
}
