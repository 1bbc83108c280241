package openai

import (
	"errors"
	"testing"
)

func completion(content string) []byte {
	return []byte(`{"choices":[{"message":{"content":` + quoteJSON(content) + `}}]}`)
}

func quoteJSON(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestParseCompletionResponse(t *testing.T) {
	body := completion(`{"isReceipt":true,"restaurantName":"Cafe Uno","items":[{"name":"Latte","price":4.50,"quantity":1}],"totals":{"subtotal":4.50,"tax":0.36,"total":4.86}}`)

	got, err := parseCompletionResponse(body)
	if err != nil {
		t.Fatalf("parseCompletionResponse() error = %v", err)
	}
	if got.RestaurantName == nil || *got.RestaurantName != "Cafe Uno" {
		t.Errorf("restaurantName = %v, want Cafe Uno", got.RestaurantName)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Latte" {
		t.Errorf("items = %+v, want one Latte", got.Items)
	}
}

func TestParseCompletionResponseStripsCodeFences(t *testing.T) {
	body := completion("```json\n{\"isReceipt\":true,\"items\":[],\"totals\":{}}\n```")

	got, err := parseCompletionResponse(body)
	if err != nil {
		t.Fatalf("parseCompletionResponse() error = %v", err)
	}
	if got.IsReceipt == nil || !*got.IsReceipt {
		t.Errorf("isReceipt = %v, want true", got.IsReceipt)
	}
}

func TestParseCompletionResponseExtractsEmbeddedObject(t *testing.T) {
	body := completion(`Here is the parsed receipt: {"isReceipt":true,"items":[],"totals":{}} hope that helps`)

	got, err := parseCompletionResponse(body)
	if err != nil {
		t.Fatalf("parseCompletionResponse() error = %v", err)
	}
	if got.IsReceipt == nil || !*got.IsReceipt {
		t.Errorf("isReceipt = %v, want true", got.IsReceipt)
	}
}

func TestParseCompletionResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"no choices", []byte(`{"choices":[]}`)},
		{"empty content", completion("")},
		{"not json at all", completion("sorry, I cannot read this image")},
		{"malformed body", []byte(`{{{`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCompletionResponse(tt.body)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var apiErr *OpenAIError
			if !errors.As(err, &apiErr) {
				t.Errorf("error type = %T, want *OpenAIError", err)
			}
		})
	}
}
