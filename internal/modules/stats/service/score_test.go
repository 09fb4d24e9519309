package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(0, 0, 0))
	assert.Equal(t, 100, Score(1, 0, 0))
	assert.Equal(t, 50, Score(0, 1, 0))

	// Distance counts in whole kilometers only.
	assert.Equal(t, 10, Score(0, 0, 1.0))
	assert.Equal(t, 10, Score(0, 0, 1.9))
	assert.Equal(t, 0, Score(0, 0, 0.999))

	assert.Equal(t, 1*100+3*50+12*10, Score(1, 3, 12.4))
}

func TestCompletionPercentage(t *testing.T) {
	// No published paths is 0, never a division by zero.
	assert.Equal(t, 0, CompletionPercentage(0, 0))

	assert.Equal(t, 25, CompletionPercentage(1, 4))
	assert.Equal(t, 33, CompletionPercentage(1, 3))
	assert.Equal(t, 67, CompletionPercentage(2, 3))
	assert.Equal(t, 100, CompletionPercentage(4, 4))
}
