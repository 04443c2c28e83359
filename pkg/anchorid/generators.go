package anchorid

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

var generator Generator = NewRandomGenerator(DefaultLength)

/* Generator */

type Generator interface {
	New() ID
}

// Reset restores the original random generator.
// Useful in tests with a defer after overriding the default generator.
func Reset() {
	generator = NewRandomGenerator(DefaultLength)
}

/*
 * RandomGenerator
 */

// RandomGenerator is a production-grade Generator returning random ids.
type RandomGenerator struct {
	length int
}

func NewRandomGenerator(length int) *RandomGenerator {
	return &RandomGenerator{length: min(max(length, MinLength), MaxLength)}
}

// New generates an id. Collisions must be checked by the caller (see NewUnused).
func (g *RandomGenerator) New() ID {
	// A random UUID provides 122 bits of entropy, more than enough for 12 digits
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[0:8])
	modulo := uint64(1)
	for range g.length {
		modulo *= 10
	}
	return ID(fmt.Sprintf("%0*d", g.length, n%modulo))
}

/*
 * SuiteGenerator
 */

// SuiteGenerator returns a predefined suite of ids.
// This generator is useful for tests when ids are relevant for the test case.
type SuiteGenerator struct {
	nextIDs []string
}

func NewSuiteGenerator(nextIDs ...string) *SuiteGenerator {
	return &SuiteGenerator{nextIDs: nextIDs}
}

func (g *SuiteGenerator) New() ID {
	if len(g.nextIDs) > 0 {
		id, nextIDs := g.nextIDs[0], g.nextIDs[1:]
		g.nextIDs = nextIDs
		return ID(id)
	}
	panic("No more ids")
}

/*
 * FixedGenerator
 */

// FixedGenerator returns always the same id.
type FixedGenerator struct {
	id ID
}

func NewFixedGenerator(id ID) *FixedGenerator {
	return &FixedGenerator{id: id}
}

func (g *FixedGenerator) New() ID {
	return g.id
}

/*
 * SequenceGenerator
 */

// SequenceGenerator returns numbered ids in a predictable format.
type SequenceGenerator struct {
	count int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{count: 0}
}

func (g *SequenceGenerator) New() ID {
	g.count++
	return ID(fmt.Sprintf("%06d", g.count))
}
