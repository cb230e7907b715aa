package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatsLeft(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		enrolled int
		want     int
	}{
		{"open batch", 25, 7, 18},
		{"last seat", 25, 24, 1},
		{"exactly full", 25, 25, 0},
		{"overbooked", 25, 30, 0},
		{"zero capacity", 0, 0, 0},
		{"negative capacity", -5, 0, 0},
		{"negative enrolled", 25, -3, 25},
		{"both negative", -5, -3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SeatsLeft(tc.capacity, tc.enrolled))
		})
	}
}

func TestBatchFull(t *testing.T) {
	assert.False(t, BatchFull(25, 7))
	assert.False(t, BatchFull(25, 24))
	assert.True(t, BatchFull(25, 25))
	assert.True(t, BatchFull(25, 30))
	assert.True(t, BatchFull(0, 0))
	assert.True(t, BatchFull(-5, 0))
	assert.False(t, BatchFull(25, -3))
}

func TestBatchFullAgreesWithSeatsLeft(t *testing.T) {
	for capacity := -2; capacity <= 30; capacity++ {
		for enrolled := -2; enrolled <= 35; enrolled++ {
			assert.Equal(t, SeatsLeft(capacity, enrolled) == 0, BatchFull(capacity, enrolled),
				"capacity=%d enrolled=%d", capacity, enrolled)
		}
	}
}

func TestCourseFree(t *testing.T) {
	assert.True(t, Course{Price: 0}.Free())
	assert.True(t, Course{Price: -1}.Free())
	assert.False(t, Course{Price: 0.01}.Free())
	assert.False(t, Course{Price: 15000}.Free())
}
