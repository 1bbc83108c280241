package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/splycehq/splyce-backend/internal/domain"
)

// systemPrompt instructs the model to classify the image and emit the
// exact JSON shape the normalizer expects.
const systemPrompt = `You extract structured data from restaurant receipts. ` +
	`First, decide if the image is actually a receipt and if the receipt is visible. ` +
	`Return ONLY JSON matching this shape: ` +
	`{ "isReceipt": boolean, "restaurantName": string|null, "date": string|null, ` +
	`"items": [ { "name": string, "price": number, "quantity": number } ], ` +
	`"totals": { "subtotal": number, "tax": number, "tip": number, "serviceCharge"?: number, "total": number } }. ` +
	`Use quantity 1 if not present. Round prices to two decimals. ` +
	`Never include markdown or code fences.`

// ExtractReceipt sends a base64-encoded receipt image to the vision
// model and returns the raw structured parse. Returns ErrTimeout when
// the model does not answer within the configured bound.
func (c *Client) ExtractReceipt(ctx context.Context, base64Image string) (domain.RawParsedReceipt, error) {
	if c.apiKey == "" {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "validate_configuration",
			Err: fmt.Errorf("OpenAI API key is not configured. Please set OPENAI_API_KEY environment variable"),
		}
	}

	type imageURL struct {
		URL string `json:"url"`
	}

	type content struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *imageURL `json:"image_url,omitempty"`
	}

	type message struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}

	requestPayload := map[string]any{
		"model":       c.modelID,
		"temperature": 0,
		"max_tokens":  500,
		"response_format": map[string]string{
			"type": "json_object",
		},
		"messages": []message{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role: "user",
				Content: []content{
					{Type: "text", Text: "Read the receipt image and return structured JSON."},
					{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + base64Image}},
				},
			},
		},
	}

	requestData, err := json.Marshal(requestPayload)
	if err != nil {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "marshal_request",
			Err: fmt.Errorf("failed to marshal request payload: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "create_extract_request",
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return domain.RawParsedReceipt{}, &OpenAIError{Op: "send_extract_request", Err: ErrTimeout}
		}
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "send_extract_request",
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "read_response",
			Err: fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "check_api_response",
			Err: fmt.Errorf("API error: %s - %s", resp.Status, string(respBody)),
		}
	}

	return parseCompletionResponse(respBody)
}

// isClientTimeout reports whether the transport error was the
// http.Client timeout rather than a network failure.
func isClientTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
