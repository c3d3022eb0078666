package llm

import (
	"testing"
)

// TestParseProviderType verifies provider parsing including aliases
func TestParseProviderType(t *testing.T) {
	cases := []struct {
		input string
		want  ProviderType
	}{
		{"gemini", ProviderGemini},
		{"google", ProviderGemini},
		{"GEMINI", ProviderGemini},
		{"openai", ProviderOpenAI},
		{"gpt", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
		{"claude", ProviderAnthropic},
		{"Claude", ProviderAnthropic},
		{"deepseek", ProviderDeepSeek},
	}

	for _, tc := range cases {
		got, err := ParseProviderType(tc.input)
		if err != nil {
			t.Errorf("ParseProviderType(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestParseProviderTypeUnknown verifies unknown providers are rejected
func TestParseProviderTypeUnknown(t *testing.T) {
	if _, err := ParseProviderType("cohere"); err == nil {
		t.Error("expected error for unknown provider, got nil")
	}
}

// TestProviderTypeRoundTrip verifies String output parses back to itself
func TestProviderTypeRoundTrip(t *testing.T) {
	for _, p := range []ProviderType{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek} {
		got, err := ParseProviderType(p.String())
		if err != nil {
			t.Errorf("ParseProviderType(%q) returned error: %v", p.String(), err)
			continue
		}
		if got != p {
			t.Errorf("round trip for %v gave %v", p, got)
		}
	}
}

// TestProviderTypeEnvVar verifies each provider names a distinct API key variable
func TestProviderTypeEnvVar(t *testing.T) {
	seen := make(map[string]ProviderType)
	for _, p := range []ProviderType{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek} {
		env := p.EnvVar()
		if env == "" {
			t.Errorf("%v has no env var", p)
			continue
		}
		if other, ok := seen[env]; ok {
			t.Errorf("%v and %v share env var %s", p, other, env)
		}
		seen[env] = p
	}
}

// TestProviderTypeDefaultModel verifies each provider has a default model
func TestProviderTypeDefaultModel(t *testing.T) {
	for _, p := range []ProviderType{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek} {
		if p.DefaultModel() == "" {
			t.Errorf("%v has no default model", p)
		}
	}
}

// TestBuilderModelOverride verifies an explicit model wins over the default
func TestBuilderModelOverride(t *testing.T) {
	provider, err := ProviderAnthropic.
		Model(ModelAnthropicClaudeSonnet4).
		MaxTokens(1024).
		APIKey("test-key")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if provider.Model() != ModelAnthropicClaudeSonnet4 {
		t.Errorf("Model() = %q, want %q", provider.Model(), ModelAnthropicClaudeSonnet4)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Name() = %q, want anthropic", provider.Name())
	}
}

// TestBuilderDefaults verifies defaults apply when nothing is configured
func TestBuilderDefaults(t *testing.T) {
	provider, err := ProviderOpenAI.APIKey("test-key")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if provider.Model() != ProviderOpenAI.DefaultModel() {
		t.Errorf("Model() = %q, want default %q", provider.Model(), ProviderOpenAI.DefaultModel())
	}
}

// TestFromEnvMissingKey verifies a missing API key variable is reported
func TestFromEnvMissingKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	if _, err := ProviderDeepSeek.FromEnv(); err == nil {
		t.Error("expected error when DEEPSEEK_API_KEY is unset, got nil")
	}
}
