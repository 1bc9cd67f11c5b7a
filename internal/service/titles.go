package service

import (
	"context"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"tutor-llm/internal/llm"
)

// titleMaxRunes es el corte del fallback por truncado. Sin elipsis:
// el punto de corte se preserva exacto.
const titleMaxRunes = 30

// TitleService deriva un titulo corto a partir del primer mensaje de usuario.
// Se invoca a lo sumo una vez por chat, mientras el titulo siga siendo el sentinel.
type TitleService struct {
	llmClient llm.Client
	demoMode  bool
	strategy  string
	logger    *zap.Logger
}

func NewTitleService(llmClient llm.Client, demoMode bool, strategy string, logger *zap.Logger) *TitleService {
	return &TitleService{
		llmClient: llmClient,
		demoMode:  demoMode,
		strategy:  strategy,
		logger:    logger,
	}
}

// Derive nunca falla: cualquier problema con el LLM cae al truncado del mensaje.
func (s *TitleService) Derive(ctx context.Context, firstMessage string) string {
	if s.demoMode {
		return demoTitles[rand.Intn(len(demoTitles))]
	}
	if s.strategy != TitleStrategyLLM {
		return truncateTitle(firstMessage)
	}

	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	title, err := s.llmClient.Complete(ctx, titlePrompt(firstMessage), "", titleSampling)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("title derivation failed, falling back to truncation", zap.Error(err))
		}
		return truncateTitle(firstMessage)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return truncateTitle(firstMessage)
	}
	return title
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= titleMaxRunes {
		return s
	}
	return string(runes[:titleMaxRunes])
}
