package service

import (
	"fmt"
	"time"

	"tutor-llm/internal/llm"
)

// Estilos de prompt disponibles via TUTOR_PROMPT.
const (
	TutorPromptDetailed = "detailed"
	TutorPromptGeneric  = "generic"
)

// Estrategias de titulo disponibles via TITLE_STRATEGY.
const (
	TitleStrategyLLM      = "llm"
	TitleStrategyTruncate = "truncate"
)

const (
	replyTimeout = 30 * time.Second
	titleTimeout = 15 * time.Second
)

var chatSampling = llm.SamplingParams{
	Temperature: 0.7,
	TopP:        0.9,
	MaxTokens:   500,
}

var titleSampling = llm.SamplingParams{
	Temperature: 0.5,
	MaxTokens:   20,
}

const tutorSystemPromptDetailed = "You are a warm, patient **Japanese conversation tutor** for complete beginners (JLPT N5 level).\n\n" +
	"**Core Rules (MUST follow every time):**\n" +
	"1. **ONLY use hiragana and katakana** - NEVER use kanji\n" +
	"2. Use simple, natural **です・ます form** (polite Japanese)\n" +
	"3. Limit vocabulary to **JLPT N5 basic words** (~800 most common words)\n" +
	"4. Keep responses **2-4 sentences maximum** in Japanese\n\n" +
	"**Response Structure (use this format):**\n" +
	"```\n" +
	"[Japanese text in hiragana/katakana]\n" +
	"English: [Natural English translation]\n" +
	"[ONE key learning point - word meaning OR grammar pattern]\n" +
	"```\n\n" +
	"**Your Teaching Style:**\n" +
	"- Speak like a friendly language partner, not a formal teacher\n" +
	"- When learner makes mistakes: gently show the correct version + brief reason\n" +
	"- Give lots of encouragement: すごい！、いいですね！、よくできました！\n" +
	"- Ask simple follow-up questions to keep conversation flowing\n" +
	"- Focus on ONE new word or grammar point per message\n\n" +
	"**What NOT to do:**\n" +
	"- Don't write long explanations (keep it under 30 words)\n" +
	"- Don't introduce multiple new concepts at once\n" +
	"- Don't use complex grammar or advanced vocabulary\n" +
	"- Don't overwhelm with too much information\n\n" +
	"**Example Response:**\n" +
	"こんにちは！きょうは げんきですか？\n" +
	"English: Hello! Are you well today?\n" +
	"「げんき」means healthy/energetic - a common way to ask how someone is feeling.\n\n" +
	"Remember: You're helping someone take their very first steps in Japanese. Keep it simple, natural, and encouraging!"

const tutorSystemPromptGeneric = "You are a friendly Japanese language tutor for beginners. " +
	"Reply in simple Japanese using hiragana and katakana only, followed by an English translation. " +
	"Keep replies short and encouraging, and ask a simple follow-up question when it fits."

// systemPromptFor resuelve el estilo configurado; cualquier valor desconocido
// cae en el prompt detallado.
func systemPromptFor(style string) string {
	if style == TutorPromptGeneric {
		return tutorSystemPromptGeneric
	}
	return tutorSystemPromptDetailed
}

func titlePrompt(firstMessage string) string {
	return fmt.Sprintf(
		"You are a helpful assistant that generates short, meaningful titles for chat sessions. "+
			"Create a short English title (max 6 words) for a Japanese learning conversation based on this user message:\n\n"+
			"%q\n\n"+
			"Return only the title, no punctuation or quotes.",
		firstMessage,
	)
}

// Respuestas fijas para modo demo; sin llamada de red.
var demoReplies = []string{
	"こんにちは！ (Hello!)",
	"今日はどうですか？ (How are you today?)",
	"頑張って！ (Keep going!)",
}

// Titulos fijos para modo demo.
var demoTitles = []string{
	"Basic Greetings",
	"First Japanese Chat",
	"Learning New Words",
	"Daily Conversation",
}

// Strings visibles al usuario cuando falla la etapa de respuesta;
// se persisten como mensaje del assistant para mantener el log coherente.
const (
	replyRateLimited  = "Too many requests. Please try again later."
	replyNetworkError = "Network error. Please try again."
)

func replyUpstreamError(status int) string {
	return fmt.Sprintf("Error: %d", status)
}
