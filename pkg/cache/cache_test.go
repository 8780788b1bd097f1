package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		expected string
	}{
		{"single segment", []string{"health"}, "health"},
		{"component scoped", []string{"health", "payments"}, "health:payments"},
		{"landscape scoped", []string{"health", "payments", "production"}, "health:payments:production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.segments...))
		})
	}
}

func TestKey_PrefixHierarchy(t *testing.T) {
	// A coarser key must be a prefix of every finer key beneath it, so
	// prefix invalidation covers the whole subtree.
	coarse := Key("health", "payments")
	fine := Key("health", "payments", "staging")
	assert.True(t, len(fine) > len(coarse) && fine[:len(coarse)] == coarse)
}
