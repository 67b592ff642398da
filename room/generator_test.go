package room

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	roomIDPattern   = regexp.MustCompile(`^RM\d{6}$`)
	passwordPattern = regexp.MustCompile(`^PW\d{4}$`)
)

func TestGenerateFormat(t *testing.T) {
	gen := NewGenerator()
	for i := 0; i < 100; i++ {
		creds, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, roomIDPattern, creds.RoomID)
		assert.Regexp(t, passwordPattern, creds.Password)
	}
}

func TestGenerateDeterministicWithFixedSource(t *testing.T) {
	// Нулевой источник даёт нижнюю границу обоих диапазонов.
	gen := NewGeneratorWithSource(zeroReader{})
	creds, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "RM100000", creds.RoomID)
	assert.Equal(t, "PW1000", creds.Password)
}

func TestGenerateSourceFailure(t *testing.T) {
	gen := NewGeneratorWithSource(failingReader{})
	_, err := gen.Generate()
	assert.Error(t, err)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}
