package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photodex/internal/domain"
	"github.com/kailas-cloud/photodex/internal/metrics"
)

const resolverPrompt = `You extract photo search keywords from free text. Given a user query,
return the descriptive terms a photo could be labeled with (nouns, scenes,
activities), one slot per term. Ignore filler words. Respond with a JSON
object: {"slots": {"keyword1": "dog", "keyword2": "beach"}}. If the query
contains no usable terms, respond with {"slots": {}}.`

// Resolver maps free-text queries to structured label slots via chat completion.
type Resolver struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewResolver creates an intent/slot resolver.
func NewResolver(cfg Config, model string, logger *zap.Logger) *Resolver {
	return &Resolver{
		client: newClient(cfg),
		model:  model,
		logger: logger,
	}
}

// ResolveSlots extracts zero or more slot values from the query text.
// An empty map is a valid outcome: not every query maps to known labels.
func (r *Resolver) ResolveSlots(ctx context.Context, text string) (map[string]string, error) {
	req := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: resolverPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		User: uuid.NewString(), // one session per invocation
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.ResolverRequestsTotal.WithLabelValues(r.model, "error").Inc()
		return nil, parseAPIError(err, domain.ErrResolverError)
	}
	if len(resp.Choices) == 0 {
		metrics.ResolverRequestsTotal.WithLabelValues(r.model, "error").Inc()
		return nil, fmt.Errorf("empty resolution response: %w", domain.ErrResolverError)
	}

	metrics.ResolverRequestsTotal.WithLabelValues(r.model, "success").Inc()
	metrics.ResolverRequestDuration.WithLabelValues(r.model).Observe(duration.Seconds())

	slots, err := parseSlots(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse resolution response: %w: %w", domain.ErrResolverError, err)
	}

	r.logger.Debug("slots resolved",
		zap.String("query", text),
		zap.Int("count", len(slots)),
	)
	return slots, nil
}

// parseSlots decodes the model's JSON answer and drops blank slot values.
func parseSlots(content string) (map[string]string, error) {
	var parsed struct {
		Slots map[string]string `json:"slots"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, err
	}

	slots := make(map[string]string, len(parsed.Slots))
	for k, v := range parsed.Slots {
		if strings.TrimSpace(v) == "" {
			continue
		}
		slots[k] = v
	}
	return slots, nil
}
