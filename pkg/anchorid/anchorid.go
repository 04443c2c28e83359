package anchorid

import (
	"errors"
	"fmt"
	"regexp"
)

// ID is the numeric identifier following the anchor prefix of a card.
type ID string

const (
	// DefaultLength is the number of digits of generated ids.
	DefaultLength = 6
	MinLength     = 6
	MaxLength     = 12
)

// ErrExhausted is returned when no unused id could be found.
var ErrExhausted = errors.New("no unused anchor id available")

var reID = regexp.MustCompile(`^\d{6,12}$`)

func (i ID) String() string {
	return string(i)
}

// Valid returns if the id can be used in an anchor.
func (i ID) Valid() bool {
	return reID.MatchString(string(i))
}

/* Constructors */

func New() ID {
	return generator.New()
}

// NewUnused generates ids until one is not already used.
func NewUnused(used func(ID) bool, attempts int) (ID, error) {
	for range attempts {
		id := generator.New()
		if !used(id) {
			return id, nil
		}
	}
	return "", ErrExhausted
}

/* Parser */

// Parse checks the format of the id.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.Valid() {
		return "", fmt.Errorf("invalid anchor id %q: expected %d to %d digits", s, MinLength, MaxLength)
	}
	return id, nil
}

// MustParse parses an id or panics if the format is not valid.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}
