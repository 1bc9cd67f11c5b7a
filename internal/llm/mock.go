package llm

import "context"

// Mock permite tests sin llamar a un LLM real.
type Mock struct {
	Response string
	Err      error

	Calls      int
	LastSystem string
	LastUser   string
	LastParams SamplingParams
}

func (m *Mock) Complete(_ context.Context, systemPrompt, userMessage string, params SamplingParams) (string, error) {
	m.Calls++
	m.LastSystem = systemPrompt
	m.LastUser = userMessage
	m.LastParams = params
	return m.Response, m.Err
}
