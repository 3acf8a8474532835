package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"alice", "alice"},
		{"Alice", "alice"},
		{"  Bob Smith  ", "bobsmith"},
		{"user_42!", "user42"},
		{"DJ-Khaled", "djkhaled"},
	}

	for _, tt := range tests {
		got, err := NormalizeID(tt.input)
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	_, err := NormalizeID("")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NormalizeID("!!! ???")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestNew(t *testing.T) {
	p, err := New("Alice!", "Alice", "🐱")
	assert.NoError(t, err)
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "🐱", p.Avatar)

	p, err = New("bob", "Bob", "")
	assert.NoError(t, err)
	assert.Equal(t, DefaultAvatar, p.Avatar)

	_, err = New("", "Nobody", "")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestProvision(t *testing.T) {
	p, err := Provision("alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, DefaultAvatar, p.Avatar)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice", DisplayName("alice"))
	assert.Equal(t, "X", DisplayName("x"))
	assert.Equal(t, "", DisplayName(""))
}
