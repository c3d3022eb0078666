package jsonx

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestExtractPureJSON(t *testing.T) {
	result, err := Extract[sample](`{"name": "go", "value": 42}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "go" || result.Value != 42 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestExtractFencedJSON(t *testing.T) {
	response := "```json\n{\"name\": \"go\", \"value\": 42}\n```"
	result, err := Extract[sample](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "go" {
		t.Errorf("expected name 'go', got %q", result.Name)
	}
}

func TestExtractBareFence(t *testing.T) {
	response := "```\n{\"name\": \"go\", \"value\": 7}\n```"
	result, err := Extract[sample](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value != 7 {
		t.Errorf("expected value 7, got %d", result.Value)
	}
}

func TestExtractEmbeddedInProse(t *testing.T) {
	response := `Sure, here is the evaluation: {"name": "go", "value": 42} Hope that helps!`
	result, err := Extract[sample](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value != 42 {
		t.Errorf("expected value 42, got %d", result.Value)
	}
}

func TestExtractArray(t *testing.T) {
	response := `The questions are: [{"name": "a", "value": 1}, {"name": "b", "value": 2}]`
	result, err := Extract[[]sample](response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 || result[1].Name != "b" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestExtractNoJSON(t *testing.T) {
	_, err := Extract[sample]("I could not produce a structured answer.")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no valid JSON") {
		t.Errorf("expected 'no valid JSON' in error, got: %v", err)
	}
}

func TestExtractMalformedJSON(t *testing.T) {
	_, err := Extract[sample](`{"name": "go", value: }`)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestExtractInto(t *testing.T) {
	var result sample
	if err := ExtractInto(`{"name": "go", "value": 3}`, &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value != 3 {
		t.Errorf("expected value 3, got %d", result.Value)
	}
}

func TestExtractLongPreviewTruncated(t *testing.T) {
	_, err := Extract[sample](strings.Repeat("no json here ", 50))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "...") {
		t.Errorf("expected truncated preview in error, got: %v", err)
	}
}
