package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MustParse(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPath  string
		wantQuiet bool
	}{
		{
			name:      "defaults to in-memory database",
			args:      []string{"sqwrap"},
			wantPath:  ":memory:",
			wantQuiet: false,
		},
		{
			name:      "positional database path",
			args:      []string{"sqwrap", "./app.db"},
			wantPath:  "./app.db",
			wantQuiet: false,
		},
		{
			name:      "quiet short flag",
			args:      []string{"sqwrap", "-q", "./app.db"},
			wantPath:  "./app.db",
			wantQuiet: true,
		},
		{
			name:      "quiet long flag",
			args:      []string{"sqwrap", "--quiet"},
			wantPath:  ":memory:",
			wantQuiet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MustParse(tt.args)
			assert.Equal(t, tt.wantPath, cfg.DatabasePath)
			assert.Equal(t, tt.wantQuiet, cfg.Quiet)
		})
	}
}

func Test_Version(t *testing.T) {
	assert.Contains(t, Config{}.Version(), "sqwrap")
}
