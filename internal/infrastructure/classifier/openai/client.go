// Package openai provides a Classifier implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/infrastructure/config"
)

const brandPrompt = `Analyze this forum post and extract ALL potential brand names, company names, or labels mentioned.

Be VERY INCLUSIVE - include:
- Any capitalized words that could be brand names
- Product names that might be brands
- Store names or retailer names
- Any proper nouns that could potentially be brands
- Lesser-known or niche brands

Do NOT be restrictive - if something could possibly be a brand, include it. Filtering happens later.

Respond with ONLY valid JSON, no explanatory text before or after. Use this exact format:
{
  "brands": [
    {"name": "Brand Name", "mentions": 3}
  ]
}`

const categoryPrompt = `Analyze these %d mentions of "%s" and extract relevant categories/tags:

- Style categories (raw denim, selvedge, vintage, etc.)
- Origin/country (japanese, american, italian, etc.)
- Price tier (premium, budget, mid-range, etc.)
- Use cases (workwear, streetwear, formal, casual, etc.)
- Brand characteristics (heavyweight, slim-fit, sustainable, etc.)

%s

IMPORTANT: Respond with ONLY valid JSON, no explanatory text. Use this exact format:
{
  "categories": ["category1", "category2", "category3"]
}`

const groupingPrompt = `These brand names were extracted from forum posts and may contain duplicates: the same real-world brand written with different spelling, punctuation, pluralization, or abbreviation.

Partition the duplicates into groups. Every group lists the raw names that denote ONE brand plus the best display name for it. Names without duplicates must NOT appear in any group. A raw name must never appear in more than one group.

Brand names:
%s

IMPORTANT: Respond with ONLY valid JSON, no explanatory text. Use this exact format:
{
  "groups": [
    {"canonical_name": "Iron Heart", "group_members": ["Iron Heart", "Iron Hearts", "ironheart"]}
  ]
}`

// Client implements the Classifier interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI classifier client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// ExtractBrands scans one unit of text for brand mentions.
func (c *Client) ExtractBrands(ctx context.Context, text string) ([]entities.BrandObservation, error) {
	content, err := c.complete(ctx, brandPrompt, text)
	if err != nil {
		return nil, err
	}

	var payload brandPayload
	if err := decodePayload(content, &payload); err != nil {
		return nil, err
	}
	if payload.Brands == nil {
		return nil, fmt.Errorf("%w: missing \"brands\" key (response: %s)", ports.ErrMalformedResponse, content)
	}

	out := make([]entities.BrandObservation, 0, len(payload.Brands))
	for _, b := range payload.Brands {
		if b.Name == "" {
			continue
		}
		out = append(out, entities.BrandObservation{Name: b.Name, Mentions: b.Mentions})
	}
	return out, nil
}

// ExtractCategories tags a batch of context windows for one brand.
func (c *Client) ExtractCategories(ctx context.Context, brand string, contexts []string) ([]string, error) {
	var sb strings.Builder
	for i, window := range contexts {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Context %d: %s", i+1, window)
	}

	prompt := fmt.Sprintf(categoryPrompt, len(contexts), brand, sb.String())
	content, err := c.complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	var payload categoryPayload
	if err := decodePayload(content, &payload); err != nil {
		return nil, err
	}
	if payload.Categories == nil {
		return nil, fmt.Errorf("%w: missing \"categories\" key (response: %s)", ports.ErrMalformedResponse, content)
	}
	return payload.Categories, nil
}

// GroupDuplicates partitions raw brand names into equivalence classes.
func (c *Client) GroupDuplicates(ctx context.Context, names []string) ([]entities.Grouping, error) {
	prompt := fmt.Sprintf(groupingPrompt, strings.Join(names, "\n"))
	content, err := c.complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	var payload groupingPayload
	if err := decodePayload(content, &payload); err != nil {
		return nil, err
	}
	if payload.Groups == nil {
		return nil, fmt.Errorf("%w: missing \"groups\" key (response: %s)", ports.ErrMalformedResponse, content)
	}

	out := make([]entities.Grouping, 0, len(payload.Groups))
	for _, g := range payload.Groups {
		if g.CanonicalName == "" || len(g.GroupMembers) == 0 {
			continue
		}
		out = append(out, entities.Grouping{CanonicalName: g.CanonicalName, GroupMembers: g.GroupMembers})
	}
	return out, nil
}

// complete issues one chat completion and returns the raw reply text.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// brandPayload is the JSON structure for brand extraction replies.
type brandPayload struct {
	Brands []struct {
		Name     string `json:"name"`
		Mentions int    `json:"mentions"`
	} `json:"brands"`
}

// categoryPayload is the JSON structure for category extraction replies.
type categoryPayload struct {
	Categories []string `json:"categories"`
}

// groupingPayload is the JSON structure for duplicate grouping replies.
type groupingPayload struct {
	Groups []struct {
		CanonicalName string   `json:"canonical_name"`
		GroupMembers  []string `json:"group_members"`
	} `json:"groups"`
}

// decodePayload strips markdown fences and decodes the reply into a typed
// payload; anything that fails to parse becomes ErrMalformedResponse so
// callers can skip the unit and continue.
func decodePayload(content string, v any) error {
	cleaned := cleanJSONResponse(content)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v (response: %s)", ports.ErrMalformedResponse, err, content)
	}
	return nil
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
