// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider-specific configuration lookup

package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Settings holds all application configuration.
type Settings struct {
	LLM       LLMConfig
	Interview InterviewConfig
	Storage   StorageConfig
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Provider string
	Model    string
	// ReasoningModel is the heavier model used for answer evaluation;
	// Model serves everything else.
	ReasoningModel string
	MaxTokens      uint32
	Temperature    float64
}

// InterviewConfig holds interview flow configuration.
type InterviewConfig struct {
	QuestionsPerSection int
	MaxFollowUps        int
	HistoryWindow       int
	ContextMaxLength    int
}

// StorageConfig holds persistence locations.
type StorageConfig struct {
	DBPath  string
	DataDir string
}

// providerInfo holds configuration for a specific LLM provider.
type providerInfo struct {
	modelEnv         string
	defaultModel     string
	reasoningEnv     string
	defaultReasoning string
	apiKeyEnv        string
}

// Supported providers and their configuration.
var providers = map[string]providerInfo{
	"openai":    {"OPENAI_MODEL", "gpt-5.2", "OPENAI_REASONING_MODEL", "gpt-5.2", "OPENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_MODEL", "claude-opus-4-5-20251101", "ANTHROPIC_REASONING_MODEL", "claude-opus-4-5-20251101", "ANTHROPIC_API_KEY"},
	"deepseek":  {"DEEPSEEK_MODEL", "deepseek-v3.2", "DEEPSEEK_REASONING_MODEL", "deepseek-r1", "DEEPSEEK_API_KEY"},
	"gemini":    {"GEMINI_MODEL", "gemini-3-flash", "GEMINI_REASONING_MODEL", "gemini-3-pro", "GEMINI_API_KEY"},
}

// Provider aliases map to canonical names.
var providerAliases = map[string]string{
	"claude": "anthropic",
	"google": "gemini",
	"gpt":    "openai",
}

// New creates settings for the specified provider, loading values from environment variables.
// Returns an error if the provider is unknown or environment variables contain invalid values.
func New(provider string) (Settings, error) {
	provider = normalizeProvider(provider)

	info, err := getProviderInfo(provider)
	if err != nil {
		return Settings{}, err
	}

	maxTokens, err := getEnvUint32("LLM_MAX_TOKENS", 4096)
	if err != nil {
		return Settings{}, err
	}

	temperature, err := getEnvFloat64("LLM_TEMPERATURE", 0.0)
	if err != nil {
		return Settings{}, err
	}

	questionsPerSection, err := getEnvInt("INTERVIEW_QUESTIONS_PER_SECTION", 5)
	if err != nil {
		return Settings{}, err
	}

	maxFollowUps, err := getEnvInt("INTERVIEW_MAX_FOLLOW_UPS", 2)
	if err != nil {
		return Settings{}, err
	}

	historyWindow, err := getEnvInt("INTERVIEW_HISTORY_WINDOW", 10)
	if err != nil {
		return Settings{}, err
	}

	contextMaxLength, err := getEnvInt("INTERVIEW_CONTEXT_MAX_LENGTH", 3000)
	if err != nil {
		return Settings{}, err
	}

	// Get models from environment or use defaults
	model := os.Getenv(info.modelEnv)
	if model == "" {
		model = info.defaultModel
	}
	reasoningModel := os.Getenv(info.reasoningEnv)
	if reasoningModel == "" {
		reasoningModel = info.defaultReasoning
	}

	dbPath := os.Getenv("PROSPECTOR_DB")
	if dbPath == "" {
		dbPath = "prospector.db"
	}
	dataDir := os.Getenv("PROSPECTOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	return Settings{
		LLM: LLMConfig{
			Provider:       provider,
			Model:          model,
			ReasoningModel: reasoningModel,
			MaxTokens:      maxTokens,
			Temperature:    temperature,
		},
		Interview: InterviewConfig{
			QuestionsPerSection: questionsPerSection,
			MaxFollowUps:        maxFollowUps,
			HistoryWindow:       historyWindow,
			ContextMaxLength:    contextMaxLength,
		},
		Storage: StorageConfig{
			DBPath:  dbPath,
			DataDir: dataDir,
		},
	}, nil
}

// normalizeProvider converts provider aliases to canonical names.
func normalizeProvider(provider string) string {
	provider = strings.ToLower(provider)
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}

// getProviderInfo returns configuration for a provider.
func getProviderInfo(provider string) (providerInfo, error) {
	info, ok := providers[provider]
	if !ok {
		return providerInfo{}, fmt.Errorf("unknown provider: %q", provider)
	}
	return info, nil
}

// APIKeyFor returns the API key for a provider from environment variables.
func APIKeyFor(provider string) (string, error) {
	provider = normalizeProvider(provider)

	info, err := getProviderInfo(provider)
	if err != nil {
		return "", err
	}

	key := os.Getenv(info.apiKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", info.apiKeyEnv)
	}
	return key, nil
}

// ModelFor returns the model for a provider, checking environment first.
func ModelFor(provider string) (string, error) {
	provider = normalizeProvider(provider)

	info, err := getProviderInfo(provider)
	if err != nil {
		return "", err
	}

	if val := os.Getenv(info.modelEnv); val != "" {
		return val, nil
	}
	return info.defaultModel, nil
}

// SupportedProviders returns the sorted list of supported provider names.
func SupportedProviders() []string {
	result := make([]string, 0, len(providers))
	for name := range providers {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Environment variable helpers with proper error handling

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return i, nil
}

func getEnvUint32(key string, defaultVal uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return uint32(i), nil
}

func getEnvFloat64(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return f, nil
}
