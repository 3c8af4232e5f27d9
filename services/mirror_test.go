package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstRowOfRange(t *testing.T) {
	cases := map[string]int{
		"Customers!A5:H5": 5,
		"Bookings!A12:G12": 12,
		"Sheet1!A2": 2,
	}
	for rng, want := range cases {
		got, err := firstRowOfRange(rng)
		require.NoError(t, err, rng)
		assert.Equal(t, want, got, rng)
	}

	_, err := firstRowOfRange("Customers!A:H")
	assert.Error(t, err)
}

func TestPhysicalRowOffset(t *testing.T) {
	// Default layout: header on row 1, data from row 2.
	m := &SheetsMirror{startRow: 2}
	assert.Equal(t, 2, m.physicalRow(0))
	assert.Equal(t, 7, m.physicalRow(5))

	// A taller header block shifts every data row down.
	m = &SheetsMirror{startRow: 4}
	assert.Equal(t, 4, m.physicalRow(0))
	assert.Equal(t, 9, m.physicalRow(5))
}
