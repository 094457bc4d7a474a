package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	envAPIKey      = "GEMINI_API_KEY"
	envModel       = "GEMINI_MODEL"
	envDataDir     = "RESUME_DATA_DIR"
	envOutputDir   = "RESUME_OUTPUT_DIR"
	envGeneratePDF = "RESUME_GENERATE_PDF"
)

// 缺省值
const (
	defaultModel     = "gemini-2.5-flash"
	defaultDataDir   = "data"
	defaultOutputDir = "outputs"
)

// Config 运行所需的全部配置，来自环境变量(可选地先加载 .env)
type Config struct {
	APIKey      string
	Model       string
	DataDir     string
	OutputDir   string
	GeneratePDF bool
}

// Load 读取配置。当前目录下有 .env 时先加载它(没有不算错误)。
// GEMINI_API_KEY 缺失时直接报错，让程序在调用模型之前就失败。
func Load() (*Config, error) {
	// .env 不存在时 godotenv 会报错，忽略即可
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv(envAPIKey))
	if apiKey == "" {
		return nil, fmt.Errorf("环境变量 %s 未设置，请先配置 Gemini API key", envAPIKey)
	}

	return &Config{
		APIKey:      apiKey,
		Model:       envOrDefault(envModel, defaultModel),
		DataDir:     envOrDefault(envDataDir, defaultDataDir),
		OutputDir:   envOrDefault(envOutputDir, defaultOutputDir),
		GeneratePDF: parseBoolDefaultTrue(os.Getenv(envGeneratePDF)),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// parseBoolDefaultTrue 只有显式的关闭取值才关闭，其余(含空)一律开启
func parseBoolDefaultTrue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
