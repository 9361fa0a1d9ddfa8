package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection_Validate(t *testing.T) {
	for _, d := range Directions {
		assert.NoError(t, d.Validate(), "direction %s", d)
	}

	invalid := []Direction{{0, 0}, {1, 1}, {2, 0}, {0, -2}, {-1, 1}}
	for _, d := range invalid {
		err := d.Validate()
		require.Error(t, err, "direction %v", d)
		assert.True(t, errors.Is(err, ErrInvalidDirection))
	}
}

func TestDirection_Opposite(t *testing.T) {
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Up, Down.Opposite())
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Left, Right.Opposite())
}

func TestDirection_IndexRoundTrip(t *testing.T) {
	for i, d := range Directions {
		assert.Equal(t, i, d.Index())
		back, err := DirectionFromIndex(i)
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}

	assert.Equal(t, -1, Direction{}.Index())
	_, err := DirectionFromIndex(4)
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in       string
		expected Direction
	}{
		{"up", Up},
		{"DOWN", Down},
		{" Left ", Left},
		{"right", Right},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDirection(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
			assert.Equal(t, d, mustParse(t, d.String()))
		})
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func mustParse(t *testing.T, s string) Direction {
	t.Helper()
	d, err := ParseDirection(s)
	require.NoError(t, err)
	return d
}
