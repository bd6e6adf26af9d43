package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Recognizer  RecognizerConfig  `yaml:"recognizer"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Segmenter   SegmenterConfig   `yaml:"segmenter"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	CORSOrigins    []string `yaml:"cors_origins"`
}

type PathsConfig struct {
	Root string `yaml:"root"`
	Temp string `yaml:"temp"`
}

type RecognizerConfig struct {
	Backend    string `yaml:"backend"`
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	ServerURL  string `yaml:"server_url"`
	FFmpegPath string `yaml:"ffmpeg_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type SummarizerConfig struct {
	Backend    string   `yaml:"backend"`
	Model      string   `yaml:"model"`
	APIKeys    []string `yaml:"api_keys"`
	ChatURL    string   `yaml:"chat_url"`
	ChatAPIKey string   `yaml:"chat_api_key"`
	MaxTokens  int      `yaml:"max_tokens"`
	MinTokens  int      `yaml:"min_tokens"`
	Docx       bool     `yaml:"docx"`
}

type SegmenterConfig struct {
	FFmpegPath  string  `yaml:"ffmpeg_path"`
	SampleRate  int     `yaml:"sample_rate"`
	TopDB       float64 `yaml:"top_db"`
	FrameLength int     `yaml:"frame_length"`
	HopLength   int     `yaml:"hop_length"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	RecognizerWhisperCLI    = "whisper-cli"
	RecognizerWhisperServer = "whisper-server"

	SummarizerGemini = "gemini"
	SummarizerChat   = "chat"
)

func (c *Config) Validate() error {
	if err := c.checkNonNegative(); err != nil {
		return err
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 512 << 20
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Paths.Root == "" {
		c.Paths.Root = "."
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}

	if c.Recognizer.Backend == "" {
		c.Recognizer.Backend = RecognizerWhisperCLI
	}
	if c.Recognizer.FFmpegPath == "" {
		c.Recognizer.FFmpegPath = "ffmpeg"
	}
	if c.Recognizer.Language == "" {
		c.Recognizer.Language = "auto"
	}
	if c.Recognizer.Threads == 0 {
		c.Recognizer.Threads = 8
	}
	switch c.Recognizer.Backend {
	case RecognizerWhisperCLI:
		if c.Recognizer.ModelPath == "" {
			return fmt.Errorf("recognizer.model_path is required for %s", RecognizerWhisperCLI)
		}
		if c.Recognizer.BinaryPath == "" {
			c.Recognizer.BinaryPath = "whisper-cli"
		}
	case RecognizerWhisperServer:
		if c.Recognizer.ServerURL == "" {
			return fmt.Errorf("recognizer.server_url is required for %s", RecognizerWhisperServer)
		}
	default:
		return fmt.Errorf("unknown recognizer.backend: %s", c.Recognizer.Backend)
	}

	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = SummarizerGemini
	}
	if c.Summarizer.MaxTokens == 0 {
		c.Summarizer.MaxTokens = 150
	}
	if c.Summarizer.MinTokens == 0 {
		c.Summarizer.MinTokens = 40
	}
	if c.Summarizer.MinTokens > c.Summarizer.MaxTokens {
		return fmt.Errorf("summarizer.min_tokens (%d) exceeds summarizer.max_tokens (%d)",
			c.Summarizer.MinTokens, c.Summarizer.MaxTokens)
	}
	switch c.Summarizer.Backend {
	case SummarizerGemini:
		if c.Summarizer.Model == "" {
			c.Summarizer.Model = "gemini-2.5-flash"
		}
		if len(c.Summarizer.APIKeys) == 0 {
			return fmt.Errorf("summarizer.api_keys (or GEMINI_API_KEYS) is required for %s", SummarizerGemini)
		}
	case SummarizerChat:
		if c.Summarizer.ChatURL == "" {
			return fmt.Errorf("summarizer.chat_url is required for %s", SummarizerChat)
		}
		if c.Summarizer.Model == "" {
			return fmt.Errorf("summarizer.model is required for %s", SummarizerChat)
		}
	default:
		return fmt.Errorf("unknown summarizer.backend: %s", c.Summarizer.Backend)
	}

	if c.Segmenter.FFmpegPath == "" {
		c.Segmenter.FFmpegPath = c.Recognizer.FFmpegPath
	}
	if c.Segmenter.SampleRate == 0 {
		c.Segmenter.SampleRate = 22050
	}
	if c.Segmenter.TopDB == 0 {
		c.Segmenter.TopDB = 20
	}
	if c.Segmenter.FrameLength == 0 {
		c.Segmenter.FrameLength = 2048
	}
	if c.Segmenter.HopLength == 0 {
		c.Segmenter.HopLength = 512
	}
	if c.Segmenter.HopLength > c.Segmenter.FrameLength {
		return fmt.Errorf("segmenter.hop_length must not exceed segmenter.frame_length")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

// checkNonNegative rejects negative sizes and counts. Zero means "use the
// default" and is filled in by Validate.
func (c *Config) checkNonNegative() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"server.max_upload_bytes", float64(c.Server.MaxUploadBytes)},
		{"recognizer.threads", float64(c.Recognizer.Threads)},
		{"summarizer.max_tokens", float64(c.Summarizer.MaxTokens)},
		{"summarizer.min_tokens", float64(c.Summarizer.MinTokens)},
		{"segmenter.sample_rate", float64(c.Segmenter.SampleRate)},
		{"segmenter.top_db", c.Segmenter.TopDB},
		{"segmenter.frame_length", float64(c.Segmenter.FrameLength)},
		{"segmenter.hop_length", float64(c.Segmenter.HopLength)},
		{"performance.max_concurrent", float64(c.Performance.MaxConcurrent)},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative, got %v", f.name, f.value)
		}
	}
	return nil
}
