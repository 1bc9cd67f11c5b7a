package config

import (
	"errors"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio. Inmutable despues de LoadConfig;
// la logica de negocio nunca lee variables de entorno directamente.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://llm.chutes.ai/v1"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"deepseek-ai/DeepSeek-V3-0324"`

	// DemoMode reemplaza toda llamada al LLM por respuestas fijas.
	DemoMode bool `env:"DEMO_MODE" envDefault:"false"`

	// TitleStrategy: "llm" o "truncate".
	TitleStrategy string `env:"TITLE_STRATEGY" envDefault:"llm"`
	// TutorPrompt: "detailed" o "generic".
	TutorPrompt string `env:"TUTOR_PROMPT" envDefault:"detailed"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	// ChatRateLimit limita POST /chat por IP por minuto cuando hay redis.
	ChatRateLimit int `env:"CHAT_RATE_LIMIT" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if !cfg.DemoMode && cfg.LLMAPIKey == "" {
		return nil, errors.New("LLM_API_KEY is required unless DEMO_MODE=true")
	}
	return &cfg, nil
}
