package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	TelegramToken  string `json:"-"`
	MaxUploadBytes int64
	MaxImagePixels int
	RateLimit      int
	RateBurst      int
	CORSOrigins    []string

	ModelDir          string
	ClassifierBackend string
	ONNXRuntimeLib    string
	ModelChannelLast  bool

	BinaryThreshold  int
	DilateKernel     int
	DilateIterations int
	GlyphWidth       int
	GlyphHeight      int
	GlyphOrder       string
	ClassifyWorkers  int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		HTTPAddr:       getEnvOrDefault("HTTP_ADDR", ":5000"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20, &errs)),
		MaxImagePixels: getEnvAsInt("MAX_IMAGE_PIXELS", 40_000_000, &errs),
		RateLimit:      getEnvAsInt("RATE_LIMIT", 3, &errs),
		RateBurst:      getEnvAsInt("RATE_BURST", 50, &errs),
		CORSOrigins:    splitList(getEnvOrDefault("CORS_ORIGINS", "*")),

		ModelDir:          getEnvOrDefault("MODEL_DIR", "model"),
		ClassifierBackend: strings.ToLower(getEnvOrDefault("CLASSIFIER_BACKEND", "onnx")),
		ONNXRuntimeLib:    os.Getenv("ONNXRUNTIME_LIB"),
		ModelChannelLast:  getEnvAsBool("MODEL_CHANNEL_LAST", false, &errs),

		BinaryThreshold:  getEnvAsInt("BINARY_THRESHOLD", 127, &errs),
		DilateKernel:     getEnvAsInt("DILATE_KERNEL", 3, &errs),
		DilateIterations: getEnvAsInt("DILATE_ITERATIONS", 5, &errs),
		GlyphWidth:       getEnvAsInt("GLYPH_WIDTH", 28, &errs),
		GlyphHeight:      getEnvAsInt("GLYPH_HEIGHT", 28, &errs),
		GlyphOrder:       strings.ToLower(getEnvOrDefault("GLYPH_ORDER", "reading")),
		ClassifyWorkers:  getEnvAsInt("CLASSIFY_WORKERS", 1, &errs),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate проверяет диапазоны значений
func (c *Config) Validate() error {
	var errs []error
	if c.BinaryThreshold < 0 || c.BinaryThreshold > 255 {
		errs = append(errs, fmt.Errorf("BINARY_THRESHOLD must be in 0..255, got %d", c.BinaryThreshold))
	}
	if c.DilateKernel < 1 || c.DilateKernel%2 == 0 {
		errs = append(errs, fmt.Errorf("DILATE_KERNEL must be odd and positive, got %d", c.DilateKernel))
	}
	if c.DilateIterations < 0 {
		errs = append(errs, fmt.Errorf("DILATE_ITERATIONS must not be negative, got %d", c.DilateIterations))
	}
	if c.GlyphWidth <= 0 || c.GlyphHeight <= 0 {
		errs = append(errs, fmt.Errorf("GLYPH_WIDTH and GLYPH_HEIGHT must be positive, got %dx%d", c.GlyphWidth, c.GlyphHeight))
	}
	if c.GlyphOrder != "reading" && c.GlyphOrder != "discovery" {
		errs = append(errs, fmt.Errorf("GLYPH_ORDER must be reading or discovery, got %q", c.GlyphOrder))
	}
	if c.ClassifyWorkers < 1 {
		errs = append(errs, fmt.Errorf("CLASSIFY_WORKERS must be at least 1, got %d", c.ClassifyWorkers))
	}
	if c.ClassifierBackend != "onnx" && c.ClassifierBackend != "tesseract" {
		errs = append(errs, fmt.Errorf("CLASSIFIER_BACKEND must be onnx or tesseract, got %q", c.ClassifierBackend))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	if c.MaxImagePixels <= 0 {
		errs = append(errs, fmt.Errorf("MAX_IMAGE_PIXELS must be positive, got %d", c.MaxImagePixels))
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive, got %d/%d", c.RateLimit, c.RateBurst))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getEnvAsBool(key string, def bool, errs *[]error) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
