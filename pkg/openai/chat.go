package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

// IGeneralChat is the generic fallback collaborator used when no plugin
// claims an utterance.
type IGeneralChat interface {
	ProcessConversation(ctx context.Context, userMessage string, conversationHistory []ConversationMessage, lang string) (string, error)
}

type ConversationMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

type generalChatService struct {
	client *openai.Client
	model  string
}

func NewGeneralChat() IGeneralChat {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4 // or GPT3Dot5Turbo for cheaper option
	}

	return &generalChatService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *generalChatService) ProcessConversation(
	ctx context.Context,
	userMessage string,
	conversationHistory []ConversationMessage,
	lang string,
) (string, error) {
	systemPrompt := `You are JARVIS, a bilingual (Spanish/English) voice assistant.

Your tasks:
1. Keep general conversation going when no specific command was recognized
2. Answer short factual questions
3. Stay consistent with the conversation history you are given

Important rules:
- ALWAYS answer in the language indicated by the lang field
- Keep answers short, at most 2-3 sentences
- If you do not know something, say so plainly
- Never invent commands or pretend an action was performed`

	if lang == "es" {
		systemPrompt += "\n\nlang: es (responde en español)"
	} else {
		systemPrompt += "\n\nlang: en (answer in English)"
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
	}

	// Add conversation history
	for _, msg := range conversationHistory {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	// Add current user message
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.7,
			MaxTokens:   150,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}
