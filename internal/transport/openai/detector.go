package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photodex/internal/domain"
	"github.com/kailas-cloud/photodex/internal/metrics"
)

// presignTTL bounds how long the detector's image link stays valid. The model
// fetches the image during the request, so a short window is enough.
const presignTTL = 10 * time.Minute

const detectorPrompt = `You label photographs. Look at the image and return up to %d short,
generic, lower-case descriptive labels (objects, scenes, activities) with a
confidence between 0 and 100 for each. Respond with a JSON object:
{"labels": [{"name": "dog", "confidence": 97.5}, ...]}`

// urlSigner derives a temporary link so the vision model can fetch the image.
type urlSigner interface {
	PresignURL(ctx context.Context, bucket, objectKey string, ttl time.Duration) (string, error)
}

// Detector requests automatic label detection for stored images via a vision
// chat completion.
type Detector struct {
	client *openai.Client
	model  string
	signer urlSigner
	logger *zap.Logger
}

// NewDetector creates a label detector.
func NewDetector(cfg Config, model string, signer urlSigner, logger *zap.Logger) *Detector {
	return &Detector{
		client: newClient(cfg),
		model:  model,
		signer: signer,
		logger: logger,
	}
}

// DetectedLabel is a single named label with the model's confidence (0-100).
type DetectedLabel struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// DetectLabels detects descriptive labels for the image at bucket/objectKey.
// The result is capped at maxLabels entries and filtered to confidences of at
// least minConfidence.
func (d *Detector) DetectLabels(
	ctx context.Context, bucket, objectKey string, maxLabels int, minConfidence float64,
) ([]DetectedLabel, error) {
	imageURL, err := d.signer.PresignURL(ctx, bucket, objectKey, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign image for detection: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: fmt.Sprintf(detectorPrompt, maxLabels),
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()
	resp, err := d.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.DetectorRequestsTotal.WithLabelValues(d.model, "error").Inc()
		return nil, parseAPIError(err, domain.ErrDetectorError)
	}
	if len(resp.Choices) == 0 {
		metrics.DetectorRequestsTotal.WithLabelValues(d.model, "error").Inc()
		return nil, fmt.Errorf("empty detection response: %w", domain.ErrDetectorError)
	}

	metrics.DetectorRequestsTotal.WithLabelValues(d.model, "success").Inc()
	metrics.DetectorRequestDuration.WithLabelValues(d.model).Observe(duration.Seconds())

	labels, err := parseDetectedLabels(resp.Choices[0].Message.Content, maxLabels, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("parse detection response: %w: %w", domain.ErrDetectorError, err)
	}

	d.logger.Debug("labels detected",
		zap.String("bucket", bucket),
		zap.String("object_key", objectKey),
		zap.Int("count", len(labels)),
	)
	return labels, nil
}

// parseDetectedLabels decodes the model's JSON answer, drops low-confidence
// and empty entries, and caps the result.
func parseDetectedLabels(content string, maxLabels int, minConfidence float64) ([]DetectedLabel, error) {
	var parsed struct {
		Labels []DetectedLabel `json:"labels"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, err
	}

	labels := make([]DetectedLabel, 0, len(parsed.Labels))
	for _, l := range parsed.Labels {
		if strings.TrimSpace(l.Name) == "" || l.Confidence < minConfidence {
			continue
		}
		labels = append(labels, l)
		if maxLabels > 0 && len(labels) == maxLabels {
			break
		}
	}
	return labels, nil
}

// DetectLabelNames runs DetectLabels and returns just the label names.
func (d *Detector) DetectLabelNames(
	ctx context.Context, bucket, objectKey string, maxLabels int, minConfidence float64,
) ([]string, error) {
	labels, err := d.DetectLabels(ctx, bucket, objectKey, maxLabels, minConfidence)
	if err != nil {
		return nil, err
	}
	return Names(labels), nil
}

// Names returns just the label names of a detection result.
func Names(labels []DetectedLabel) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}
