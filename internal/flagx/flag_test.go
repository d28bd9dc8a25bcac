package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "/tmp/managex", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d", "/tmp/managex"},
		},
		{
			name:    "equals form",
			args:    []string{"-l=debug", "-x=1"},
			allowed: []string{"-l"},
			want:    []string{"-l=debug"},
		},
		{
			name:    "next token is a flag",
			args:    []string{"-d", "-l", "info"},
			allowed: []string{"-d", "-l"},
			want:    []string{"-d", "-l", "info"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"positional", "-y", "2"},
			allowed: []string{"-d"},
			want:    []string{},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/managex.json", ConfigPath([]string{"-c", "/etc/managex.json"}))
	assert.Equal(t, "long.json", ConfigPath([]string{"-d", "data", "-config", "long.json"}))
	assert.Equal(t, "eq.json", ConfigPath([]string{"--config=eq.json"}))
	assert.Equal(t, "2.json", ConfigPath([]string{"-c", "1.json", "-config", "2.json"}))
	assert.Empty(t, ConfigPath([]string{"-l", "debug"}))
}
