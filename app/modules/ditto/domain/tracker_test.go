package dittodomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLetter(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "a", want: "A", wantOK: true},
		{in: "  b \n", want: "B", wantOK: true},
		{in: "é", want: "É", wantOK: true},
		{in: "ß", want: "SS", wantOK: true},
		{in: "ab", wantOK: false},
		{in: "1", wantOK: false},
		{in: "?", wantOK: false},
		{in: "", wantOK: false},
		{in: "   ", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLetter(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTracker_InactiveIgnoresEverything(t *testing.T) {
	tr := NewTracker()
	_, ok := tr.Observe("a", Sayer{UserID: "u1"})
	assert.False(t, ok)
	assert.Empty(t, tr.letters)
}

func TestTracker_FirstAndRepeat(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.Activate())

	obs, ok := tr.Observe("a", Sayer{UserID: "u1", Name: "Anna"})
	require.True(t, ok)
	assert.Equal(t, Observation{Letter: "A"}, obs)

	obs, ok = tr.Observe("A", Sayer{UserID: "u2", Name: "Bruno"})
	require.True(t, ok)
	assert.Equal(t, Observation{Letter: "A", Repeated: true, Previous: Sayer{UserID: "u1", Name: "Anna"}}, obs)

	// the first sayer keeps the letter
	obs, _ = tr.Observe("a", Sayer{UserID: "u3", Name: "Carla"})
	assert.Equal(t, "u1", obs.Previous.UserID)

	_, ok = tr.Observe("hello", Sayer{UserID: "u2"})
	assert.False(t, ok)
	assert.Len(t, tr.letters, 1)
}

func TestTracker_ActivateResets(t *testing.T) {
	tr := NewTracker()
	tr.Activate()
	tr.Observe("x", Sayer{UserID: "u1"})

	assert.True(t, tr.Activate())
	assert.Empty(t, tr.letters)

	obs, ok := tr.Observe("x", Sayer{UserID: "u2"})
	require.True(t, ok)
	assert.False(t, obs.Repeated)
}

func TestTracker_DeactivateStopsTracking(t *testing.T) {
	tr := NewTracker()
	tr.Activate()
	tr.Observe("x", Sayer{UserID: "u1"})
	tr.Deactivate()

	assert.False(t, tr.Active())
	_, ok := tr.Observe("x", Sayer{UserID: "u2"})
	assert.False(t, ok)

	assert.False(t, tr.Activate())
	assert.Empty(t, tr.letters)
}
