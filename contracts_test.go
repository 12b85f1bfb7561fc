package sst

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRef_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		ref      Ref
		expected string
	}{
		{
			name:     "http api",
			ref:      Ref{Resource: "ApiHttpApi"},
			expected: `{"Ref":"ApiHttpApi"}`,
		},
		{
			name:     "function",
			ref:      Ref{Resource: "ServerFunction"},
			expected: `{"Ref":"ServerFunction"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAttrRef_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		ref      AttrRef
		expected string
	}{
		{
			name:     "function arn",
			ref:      AttrRef{Resource: "ServerFunction", Attribute: "Arn"},
			expected: `{"Fn::GetAtt":["ServerFunction","Arn"]}`,
		},
		{
			name:     "api endpoint",
			ref:      AttrRef{Resource: "ApiHttpApi", Attribute: "ApiEndpoint"},
			expected: `{"Fn::GetAtt":["ApiHttpApi","ApiEndpoint"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAttrRef_IsZero(t *testing.T) {
	tests := []struct {
		name     string
		ref      AttrRef
		expected bool
	}{
		{
			name:     "empty",
			ref:      AttrRef{},
			expected: true,
		},
		{
			name:     "with resource",
			ref:      AttrRef{Resource: "ServerFunction"},
			expected: false,
		},
		{
			name:     "with attribute",
			ref:      AttrRef{Attribute: "Arn"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ref.IsZero())
		})
	}
}

func TestJoin_MarshalJSON(t *testing.T) {
	j := Join{
		Delimiter: "/",
		Values:    []any{"integrations", Ref{Resource: "ApiIntegration"}},
	}

	data, err := json.Marshal(j)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Join":["/",["integrations",{"Ref":"ApiIntegration"}]]}`, string(data))
}

func TestSub_MarshalJSON(t *testing.T) {
	s := Sub{String: "${AWS::StackName}-api"}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Sub":"${AWS::StackName}-api"}`, string(data))
}

func TestIntrinsics_MarshalYAML(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "ref",
			value:    Ref{Resource: "ApiHttpApi"},
			expected: "Ref: ApiHttpApi\n",
		},
		{
			name:     "attr ref",
			value:    AttrRef{Resource: "ServerFunction", Attribute: "Arn"},
			expected: "Fn::GetAtt:\n    - ServerFunction\n    - Arn\n",
		},
		{
			name:     "sub",
			value:    Sub{String: "${AWS::StackName}-api"},
			expected: "Fn::Sub: ${AWS::StackName}-api\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := yaml.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}
