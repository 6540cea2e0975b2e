package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "b", 1},
		{"kitten", "sitting", 3},
		{"tasks", "tasks", 0},
		{"tsks", "tasks", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestClosest(t *testing.T) {
	commands := []string{"projects", "people", "tasks", "tasklists", "time", "activity", "categories"}
	assert.Equal(t, "projects", closest("projcts", commands))
	assert.Equal(t, "tasks", closest("taks", commands))
	assert.Equal(t, "activity", closest("Activty", commands))
	assert.Equal(t, "", closest("zzzzzzzz", commands))

	flagNames := []string{"--project", "--tasklist", "--from", "--to"}
	assert.Equal(t, "--project", closest("--projet", flagNames))
	assert.Equal(t, "", closest("--", flagNames))
}
