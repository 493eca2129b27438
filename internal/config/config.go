package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every configuration section of the service.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Media  MediaConfig
	Mood   MoodConfig
	Chart  ChartConfig
}

// Load reads the full configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	media, err := loadMediaConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Media:  media,
		Mood:   loadMoodConfig(),
		Chart:  loadChartConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig holds the chat-model provider settings.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
}

// Enabled reports whether the required model credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a chat model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("chat model credentials missing: set ARK_API_KEY (or ARK_ACCESS_KEY + ARK_SECRET_KEY) and ARK_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
	}, nil
}

// MediaConfig holds the OpenAI-compatible media API settings used for
// transcription, speech synthesis and image generation, plus the local
// directory where audio and chart artifacts are written.
type MediaConfig struct {
	APIKey     string
	BaseURL    string
	ASRModel   string
	TTSModel   string
	TTSVoice   string
	ImageModel string
	ImageSize  string
	Dir        string
	Timeout    int
}

// Enabled reports whether media capability calls can be attempted.
func (c MediaConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadMediaConfig() (MediaConfig, error) {
	timeout, err := parseOptionalIntEnv("MEDIA_TIMEOUT")
	if err != nil {
		return MediaConfig{}, err
	}
	timeoutSeconds := 60
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	apiKey := strings.TrimSpace(os.Getenv("MEDIA_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}

	return MediaConfig{
		APIKey:     apiKey,
		BaseURL:    getEnvOrDefault("MEDIA_BASE_URL", "https://api.openai.com/v1"),
		ASRModel:   getEnvOrDefault("MEDIA_ASR_MODEL", "whisper-1"),
		TTSModel:   getEnvOrDefault("MEDIA_TTS_MODEL", "tts-1"),
		TTSVoice:   getEnvOrDefault("MEDIA_TTS_VOICE", "alloy"),
		ImageModel: getEnvOrDefault("MEDIA_IMAGE_MODEL", "dall-e-3"),
		ImageSize:  getEnvOrDefault("MEDIA_IMAGE_SIZE", "1024x1024"),
		Dir:        getEnvOrDefault("MEDIA_DIR", "static"),
		Timeout:    timeoutSeconds,
	}, nil
}

// MoodConfig selects the mood store backend.
type MoodConfig struct {
	Driver string
	Path   string
}

func loadMoodConfig() MoodConfig {
	driver := strings.ToLower(getEnvOrDefault("MOOD_STORE_DRIVER", "file"))

	path := strings.TrimSpace(os.Getenv("MOOD_STORE_PATH"))
	if path == "" {
		if driver == "sqlite" {
			path = "mood_log.db"
		} else {
			path = "mood_log.json"
		}
	}

	return MoodConfig{Driver: driver, Path: path}
}

// ChartConfig holds trend chart rendering options. FontPath may be empty,
// in which case charts are drawn without text labels.
type ChartConfig struct {
	FontPath string
}

func loadChartConfig() ChartConfig {
	return ChartConfig{FontPath: strings.TrimSpace(os.Getenv("CHART_FONT"))}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
