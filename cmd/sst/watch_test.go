package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchedFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "go source", path: "infra/main.go", expected: true},
		{name: "graphql schema", path: "schema.graphql", expected: true},
		{name: "graphqls schema", path: "schema.graphqls", expected: true},
		{name: "codegen config", path: "codegen.yml", expected: true},
		{name: "yaml config", path: "codegen.yaml", expected: true},
		{name: "uppercase extension", path: "MAIN.GO", expected: true},
		{name: "markdown", path: "README.md", expected: false},
		{name: "no extension", path: "Makefile", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, watchedFile(tt.path))
		})
	}
}
