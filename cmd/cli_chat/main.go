package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tutor-llm/internal/config"
	"tutor-llm/internal/db"
	"tutor-llm/internal/llm"
	"tutor-llm/internal/repository"
	"tutor-llm/internal/service"
)

// Cliente de terminal contra la capa de servicio, sin pasar por HTTP.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	chatRepo := repository.NewPgChatRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	titleSvc := service.NewTitleService(llmClient, cfg.DemoMode, cfg.TitleStrategy, logger)
	chatSvc := service.NewChatService(chatRepo, messageRepo, llmClient, titleSvc, cfg.DemoMode, cfg.TutorPrompt, logger)

	userColor := color.New(color.FgCyan, color.Bold)
	tutorColor := color.New(color.FgGreen, color.Bold)

	if cfg.DemoMode {
		color.Yellow("Demo mode: canned replies, no LLM calls.")
	}
	fmt.Println("---- Japanese tutor chat (escribe 'exit' para salir) ----")

	var chatID string
	for {
		userColor.Print("You > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("leer input: %v", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "exit") || strings.EqualFold(text, "salir") {
			fmt.Println("Saliendo del chat...")
			return
		}

		result, err := chatSvc.Converse(ctx, chatID, text)
		if err != nil {
			color.Red("error en el turno: %v", err)
			continue
		}
		chatID = result.ChatID

		tutorColor.Print("Tutor > ")
		fmt.Println(result.Reply)
	}
}
