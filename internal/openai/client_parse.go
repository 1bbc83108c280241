package openai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/splycehq/splyce-backend/internal/domain"
)

var (
	codeFenceRegex  = regexp.MustCompile("```json\\s*|```\\s*")
	jsonObjectRegex = regexp.MustCompile(`\{[\s\S]*\}`)
)

// parseCompletionResponse pulls the receipt JSON out of a chat
// completion. The model is told not to wrap its output, but code fences
// and prose leak through often enough that both are tolerated.
func parseCompletionResponse(respBody []byte) (domain.RawParsedReceipt, error) {
	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}

	type response struct {
		Choices []choice `json:"choices"`
	}

	var parsed response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "parse_response_json",
			Err: fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	if len(parsed.Choices) == 0 {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "check_response_choices",
			Err: fmt.Errorf("no choices in response"),
		}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return domain.RawParsedReceipt{}, &OpenAIError{
			Op:  "check_response_content",
			Err: fmt.Errorf("no content returned from model"),
		}
	}

	return parseReceiptContent(content)
}

// parseReceiptContent decodes the model's message content, stripping
// accidental code fences and falling back to the first JSON object
// found in the text.
func parseReceiptContent(content string) (domain.RawParsedReceipt, error) {
	cleaned := strings.TrimSpace(codeFenceRegex.ReplaceAllString(content, ""))

	var receipt domain.RawParsedReceipt
	if err := json.Unmarshal([]byte(cleaned), &receipt); err == nil {
		return receipt, nil
	}

	if match := jsonObjectRegex.FindString(cleaned); match != "" {
		if err := json.Unmarshal([]byte(match), &receipt); err == nil {
			return receipt, nil
		}
	}

	return domain.RawParsedReceipt{}, &OpenAIError{
		Op:  "parse_receipt_content",
		Err: fmt.Errorf("failed to extract receipt data from model response"),
	}
}
