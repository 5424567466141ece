package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAdminBootstrap(t *testing.T) {
	assert.Equal(t, 4, NewAdminBootstrap(0).Threshold)
	assert.Equal(t, 4, NewAdminBootstrap(-1).Threshold)
	assert.Equal(t, 10, NewAdminBootstrap(10).Threshold)
}

func TestAdminBootstrap_ComputeIsAdmin(t *testing.T) {
	b := NewAdminBootstrap(4)

	tests := []struct {
		name        string
		signupOrder int
		expected    bool
	}{
		{"first signup", 1, true},
		{"fourth signup", 4, true},
		{"fifth signup", 5, false},
		{"hundredth signup", 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.ComputeIsAdmin(tt.signupOrder))
		})
	}
}

func TestAdminBootstrap_CustomThreshold(t *testing.T) {
	b := NewAdminBootstrap(2)
	assert.True(t, b.ComputeIsAdmin(2))
	assert.False(t, b.ComputeIsAdmin(3))
}
