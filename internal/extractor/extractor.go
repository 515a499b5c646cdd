package extractor

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/menupix/menupix/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Credential resolution order: a dedicated extraction key first, then the
// shared general-purpose key.
var extractKeyVars = []string{"MENUPIX_EXTRACT_API_KEY", "GEMINI_API_KEY"}

const extractionPrompt = `Analyze this cafe menu image and extract ALL menu items into a structured JSON format.

The menu should be organized by day of the week (Monday through Friday).
For each day, extract the available menu categories and their items.

Common categories include:
- Breakfast (morning items like eggs, sandwiches)
- Soup (soup of the day)
- Deli (sandwiches, wraps)
- Carving (main entrees, carved meats)
- Charred (flatbreads, pizzas)
- Plant Power (vegetarian/vegan options)
- Action (special stations, build-your-own)

For each menu item, provide:
- name: The dish name
- description: Additional details, ingredients, or sides (empty string if none)
- price: The price(s) listed (use format like "$8.95" or "$2.90-$4.95" for ranges)

Return ONLY valid JSON in this exact format, no markdown code blocks:
{
  "Monday": {
    "Breakfast": {"name": "...", "description": "...", "price": "..."},
    "Soup": {"name": "...", "description": "...", "price": "..."},
    ...
  },
  "Tuesday": { ... },
  ...
}

Important:
- Include only weekdays (Monday-Friday)
- Use the exact category names as shown on the menu
- If a price is not visible, use "Market Price"
- Ensure all JSON is properly formatted with double quotes`

// Extractor sends the menu board photo to a vision-capable generation
// service and returns the raw (JSON-shaped) text. Parsing is not its job.
type Extractor struct {
	client  *resty.Client
	baseURL string
	model   string
	apiKey  string
	log     *log.Logger
}

// New resolves the API credential up front so a missing key fails before
// any network I/O.
func New(model string) (*Extractor, error) {
	key, err := models.LookupCredential(extractKeyVars...)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		client:  resty.New(),
		baseURL: defaultBaseURL,
		model:   model,
		apiKey:  key,
		log:     log.Default().With("component", "extractor"),
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
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

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Extract performs a single vision call with the fixed extraction prompt
// and returns the service's text, with any fenced-code wrapper stripped.
func (e *Extractor) Extract(ctx context.Context, imageBytes []byte) (string, error) {
	e.log.Info("sending image to vision model", "model", e.model, "bytes", len(imageBytes))

	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: extractionPrompt},
				{InlineData: &inlineData{
					MimeType: http.DetectContentType(imageBytes),
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
	}

	// the key travels in a header so transport errors cannot echo it
	// back as part of the URL
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", e.baseURL, e.model)

	var result generateResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", e.apiKey).
		SetBody(payload).
		SetResult(&result).
		ForceContentType("application/json").
		Post(url)
	if err != nil {
		return "", &models.UpstreamError{Service: "vision model", Message: err.Error()}
	}
	if resp.IsError() {
		return "", &models.UpstreamError{
			Service: "vision model",
			Status:  resp.StatusCode(),
			Message: strings.TrimSpace(string(resp.Body())),
		}
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &models.UpstreamError{Service: "vision model", Message: "empty response"}
	}

	return stripFence(result.Candidates[0].Content.Parts[0].Text), nil
}

// stripFence removes a markdown code fence the model may have wrapped its
// answer in: when the reply starts with ``` every line beginning with the
// sentinel is dropped and the remainder rejoined.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
