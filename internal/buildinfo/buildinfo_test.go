package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"v1.2.0", "abcdef0123", "v1.2.0"},
		{"dev", "abcdef0123", "abcdef0"},
		{"", "abc", "abc"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		assert.Equal(t, tt.want, Short(), "version=%q commit=%q", tt.version, tt.commit)
	}
}
