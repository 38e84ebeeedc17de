package models

// LLMMessage is one message of a chat-completions request.
type LLMMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMChatRequest is the OpenAI chat-completions request body. Local servers
// (Ollama, LM Studio, vLLM) speak the same format.
type LLMChatRequest struct {
	Model       string       `json:"model"`
	Messages    []LLMMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature float64      `json:"temperature,omitempty"`
	Stream      bool         `json:"stream"`
}

type LLMChatResponse struct {
	Choices []struct {
		Message LLMMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}
