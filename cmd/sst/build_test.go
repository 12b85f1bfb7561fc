package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sst "github.com/Tejasv446/serverless-stack"
)

func TestOutputResult_Success(t *testing.T) {
	dir := t.TempDir()
	result := sst.BuildResult{
		Success: true,
		Stacks: map[string]*sst.Template{
			"notes": {
				FormatVersion: "2010-09-09",
				Resources: map[string]sst.ResourceDef{
					"ServerFunction": {Type: "AWS::Lambda::Function"},
				},
			},
		},
		Resources: []string{"ServerFunction"},
	}

	require.NoError(t, outputResult(result, dir))

	data, err := os.ReadFile(filepath.Join(dir, "result.json"))
	require.NoError(t, err)

	var decoded sst.BuildResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, []string{"ServerFunction"}, decoded.Resources)
	require.Contains(t, decoded.Stacks, "notes")
	assert.Contains(t, decoded.Stacks["notes"].Resources, "ServerFunction")
	assert.Empty(t, decoded.Errors)
}

func TestOutputResult_Failure(t *testing.T) {
	dir := t.TempDir()
	err := outputResult(sst.BuildResult{
		Success: false,
		Errors:  []string{"running app in ./infra: exit status 1"},
	}, dir)
	require.EqualError(t, err, "build failed")

	_, statErr := os.Stat(filepath.Join(dir, "result.json"))
	assert.True(t, os.IsNotExist(statErr))
}
