package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Hash([]byte("")))
	assert.Equal(t, Hash([]byte("Q|What?|")), HashString("Q|What?|"))
}
