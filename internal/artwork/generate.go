package artwork

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/menupix/menupix/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Generator produces image bytes for a prompt. The synthesizer falls back
// to procedural rendering when a generator fails or is absent.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiGenerator calls the external image-generation service, retrying
// only on rate limiting with exponential backoff.
type GeminiGenerator struct {
	client   *resty.Client
	baseURL  string
	model    string
	apiKey   string
	attempts int
	backoff  time.Duration
	log      *log.Logger
}

// NewGeminiGenerator resolves the image-generation credential: the
// dedicated key first, optionally falling back to the shared key.
func NewGeminiGenerator(cfg *models.Config) (*GeminiGenerator, error) {
	keyVars := []string{"MENUPIX_IMAGE_API_KEY"}
	if cfg.ImageKeyFallback {
		keyVars = append(keyVars, "GEMINI_API_KEY")
	}
	key, err := models.LookupCredential(keyVars...)
	if err != nil {
		return nil, err
	}
	attempts := cfg.GenRetryAttempts
	if attempts <= 0 {
		attempts = 4
	}
	backoff := cfg.GenRetryBase
	if backoff <= 0 {
		backoff = 8 * time.Second
	}
	return &GeminiGenerator{
		client:   resty.New(),
		baseURL:  defaultBaseURL,
		model:    cfg.ImageModel,
		apiKey:   key,
		attempts: attempts,
		backoff:  backoff,
		log:      log.Default().With("component", "generator"),
	}, nil
}

type imageRequest struct {
	Contents         []imageContent    `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type imageContent struct {
	Parts []imagePart `json:"parts"`
}

type imagePart struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// imageResponse accepts both shapes the service is known to answer with:
// a dedicated generated-image field, or inline data inside a generic
// content part (base64-encoded).
type imageResponse struct {
	GeneratedImages []struct {
		Image struct {
			ImageBytes string `json:"imageBytes"`
		} `json:"image"`
	} `json:"generatedImages"`
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate requests one 4:3 image. Retries (up to attempts total, backoff
// doubling from the base) happen only when the failure is identifiably
// rate limiting; anything else surfaces immediately.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	var img []byte
	backoff := retry.WithMaxRetries(uint64(g.attempts-1), retry.NewExponential(g.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		data, callErr := g.call(ctx, prompt)
		if callErr != nil {
			if isRateLimited(callErr) {
				g.log.Warn("image generation rate limited, backing off", "error", callErr)
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		img = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (g *GeminiGenerator) call(ctx context.Context, prompt string) ([]byte, error) {
	payload := imageRequest{
		Contents: []imageContent{{
			Parts: []imagePart{{Text: prompt}},
		}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	// the key travels in a header so transport errors cannot echo it
	// back as part of the URL
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)

	var result imageResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(payload).
		SetResult(&result).
		ForceContentType("application/json").
		Post(url)
	if err != nil {
		return nil, &models.UpstreamError{Service: "image model", Message: err.Error()}
	}
	if resp.IsError() {
		return nil, &models.UpstreamError{
			Service: "image model",
			Status:  resp.StatusCode(),
			Message: strings.TrimSpace(string(resp.Body())),
		}
	}
	return decodeImagePayload(&result)
}

func decodeImagePayload(result *imageResponse) ([]byte, error) {
	if len(result.GeneratedImages) > 0 && result.GeneratedImages[0].Image.ImageBytes != "" {
		return decodeBase64(result.GeneratedImages[0].Image.ImageBytes)
	}
	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return decodeBase64(part.InlineData.Data)
			}
		}
	}
	return nil, &models.UpstreamError{Service: "image model", Message: "response carried no image data"}
}

func decodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// isRateLimited reports whether err is an HTTP 429 or carries an explicit
// resource-exhaustion indicator.
func isRateLimited(err error) bool {
	var upstream *models.UpstreamError
	if errors.As(err, &upstream) && upstream.Status == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "quota")
}
