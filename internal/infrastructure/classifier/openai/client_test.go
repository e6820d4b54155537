package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/infrastructure/config"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(config.LLMConfig{})
	assert.Error(t, err)

	client, err := NewClient(config.LLMConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.model)
}

func TestNewClient_ModelOverride(t *testing.T) {
	client, err := NewClient(config.LLMConfig{APIKey: "test-key", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.model)
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json untouched",
			input:    `{"brands": []}`,
			expected: `{"brands": []}`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n{\"brands\": []}\n```",
			expected: `{"brands": []}`,
		},
		{
			name:     "bare fence stripped",
			input:    "```\n{\"brands\": []}\n```",
			expected: `{"brands": []}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  {\"brands\": []}\n",
			expected: `{"brands": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONResponse(tt.input))
		})
	}
}

func TestDecodePayload_MalformedIsTyped(t *testing.T) {
	var payload brandPayload

	err := decodePayload("I think the brands are Levis and Uniqlo.", &payload)
	assert.ErrorIs(t, err, ports.ErrMalformedResponse)

	err = decodePayload(`{"brands": [{"name": "Levis", "mentions": 2}]}`, &payload)
	require.NoError(t, err)
	require.Len(t, payload.Brands, 1)
	assert.Equal(t, "Levis", payload.Brands[0].Name)
	assert.Equal(t, 2, payload.Brands[0].Mentions)
}

func TestDecodePayload_FencedReply(t *testing.T) {
	var payload categoryPayload

	err := decodePayload("```json\n{\"categories\": [\"raw denim\", \"japanese\"]}\n```", &payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw denim", "japanese"}, payload.Categories)
}
