package plugin

import (
	"context"
	"math/rand"

	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/log"
	"JarvisGolang/pkg/openai"

	"github.com/sirupsen/logrus"
)

var cannedFallbacks = map[string][]string{
	"es": {
		"Interesante. Cuéntame más.",
		"Entiendo. ¿Hay algo más en lo que pueda ayudarte?",
		"Gracias por compartir eso conmigo.",
		"Ya veo. Sigo aprendiendo y mejorando.",
		"Mi propósito es asistirte. ¿Hay alguna tarea específica que tengas en mente?",
		"Estoy aquí para escucharte.",
	},
	"en": {
		"Interesting. Tell me more.",
		"I see. Is there anything else I can help you with?",
		"Thanks for sharing that with me.",
		"I am still learning and improving.",
		"My purpose is to assist you. Is there a specific task you have in mind?",
		"I am here to listen.",
	},
}

// fallbackPlugin answers anything no specialized plugin claims. It tries
// the general chat collaborator first and falls back to canned replies
// when the collaborator is unavailable or errors out.
type fallbackPlugin struct {
	chat openai.IGeneralChat
	log  *logrus.Logger
}

func NewFallback(chat openai.IGeneralChat, logger *logrus.Logger) Plugin {
	return &fallbackPlugin{
		chat: chat,
		log:  logger,
	}
}

func (p *fallbackPlugin) Name() string { return "general_chat_fallback" }

func (p *fallbackPlugin) Description() string {
	return "Conversación general cuando ningún comando coincide. / General conversation when no command matches."
}

// CanHandle always reports false so the fallback never competes with
// specialized plugins. The dispatcher invokes it explicitly when the
// candidate census comes back empty.
func (p *fallbackPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	return false
}

func (p *fallbackPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	if p.chat != nil {
		history := historyToMessages(req.Context.History)
		reply, err := p.chat.ProcessConversation(ctx, req.Text, history, req.Language)
		if err == nil && reply != "" {
			return Result{Response: reply}, nil
		}
		if err != nil {
			p.log.WithFields(log.Fields{
				"error": err.Error(),
			}).Warn("General chat collaborator failed, using canned reply")
		}
	}

	replies := cannedFallbacks[req.Language]
	if replies == nil {
		replies = cannedFallbacks["en"]
	}
	return Result{Response: replies[rand.Intn(len(replies))]}, nil
}

func historyToMessages(turns []conversation.Turn) []openai.ConversationMessage {
	msgs := make([]openai.ConversationMessage, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Speaker == conversation.SpeakerAssistant {
			role = "assistant"
		}
		msgs = append(msgs, openai.ConversationMessage{
			Role:    role,
			Content: t.Text,
		})
	}
	return msgs
}
