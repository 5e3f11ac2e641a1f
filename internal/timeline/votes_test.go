package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteLabel(t *testing.T) {
	tests := []struct {
		vote  int
		label string
	}{
		{10, "approved"},
		{5, "approved with suggestions"},
		{0, "reset their vote"},
		{-5, "is waiting for the author"},
		{-10, "rejected"},
	}

	for _, tt := range tests {
		label, ok := VoteLabel(tt.vote)
		assert.True(t, ok, "vote %d should be known", tt.vote)
		assert.Equal(t, tt.label, label)
	}
}

func TestVoteLabelUnknownCode(t *testing.T) {
	// Unknown codes must not silently map to a label implying approval or
	// rejection.
	for _, vote := range []int{1, -1, 7, 100, -100} {
		label, ok := VoteLabel(vote)
		assert.False(t, ok, "vote %d should be unknown", vote)
		assert.Empty(t, label)
	}
}
