// Package gemini implements the VisionModel port against the Gemini
// generateContent API. The document image travels inline as base64; the
// response is a strict-JSON classification the classifier folds into its
// vote.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Option func(*Client)

// WithExecutor routes vision calls through the shared resilience executor.
// The vision API is rate limited and circuit broken there.
func WithExecutor(executor *resilience.Executor) Option {
	return func(c *Client) { c.executor = executor }
}

func New(baseURL, apiKey, model string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Contents         []content       `json:"contents"`
	GenerationConfig *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type visionVerdict struct {
	DocumentType string  `json:"document_type"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// ClassifyDocument sends the image plus OCR excerpt to the vision model and
// maps its verdict onto a classification signal.
func (c *Client) ClassifyDocument(ctx context.Context, image []byte, textExcerpt string) (domain.Signal, error) {
	if len(image) == 0 {
		return domain.Signal{}, fmt.Errorf("gemini classify: empty image")
	}

	request := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: classificationPrompt(textExcerpt)},
				{InlineData: &inlineData{
					MimeType: http.DetectContentType(image),
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: &generateConfig{
			Temperature:      0,
			ResponseMimeType: "application/json",
		},
	}

	var response generateResponse
	call := func(ctx context.Context) error {
		return c.postJSON(ctx, request, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "gemini.classify", call, classifyGeminiError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.Signal{}, wrapTemporaryIfNeeded("gemini classify", err)
	}

	return parseVerdict(response)
}

func parseVerdict(response generateResponse) (domain.Signal, error) {
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return domain.Signal{}, fmt.Errorf("gemini classify: empty response")
	}
	raw := stripJSONFences(response.Candidates[0].Content.Parts[0].Text)

	var verdict visionVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return domain.Signal{}, fmt.Errorf("parse vision verdict: %w", err)
	}

	confidence := verdict.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	signal := domain.Signal{
		DocType:    domain.ParseDocumentType(verdict.DocumentType),
		Confidence: confidence,
	}
	if reasoning := strings.TrimSpace(verdict.Reasoning); reasoning != "" {
		signal.Evidence = []string{reasoning}
	}
	return signal, nil
}

// stripJSONFences removes a markdown code fence the model sometimes wraps
// around the JSON despite the response mime type hint.
func stripJSONFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
