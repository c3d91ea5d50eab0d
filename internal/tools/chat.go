package tools

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"geniemetrics/internal/providers/genai"
)

const (
	chatSystemInstruction = "You are Genie Metrics AI, an expert SEO consultant."
	chatFailed            = "I'm having trouble connecting right now."
	thinkingBudget        = 32768
)

func validChat(in Input) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Text, validation.Required, notBlank, validation.Length(1, maxPromptText)),
		validation.Field(&in.History, validation.Length(0, maxChatHistory), validation.Each(chatTurnRule)),
	)
}

func chatRequest(in Input) genai.Request {
	history := make([]genai.Message, 0, len(in.History))
	for _, turn := range in.History {
		history = append(history, genai.Message{Role: turn.Role, Parts: []genai.Part{genai.TextPart(turn.Text)}})
	}
	return genai.Request{
		SystemInstruction: chatSystemInstruction,
		History:           history,
		Parts:             []genai.Part{genai.TextPart(in.Text)},
	}
}

// chatTools hold a stateless conversation: the client resends the history
// with every message.
func chatTools() []Tool {
	return []Tool{
		credits(Chat, "Genie Chat", 2).
			on(TierPro).
			validated(validChat).
			builds(chatRequest).
			parses(plainText).
			orElse(always(chatFailed)),

		credits(ChatThinking, "Genie Deep Think", 5).
			on(TierPro).
			validated(validChat).
			builds(func(in Input) genai.Request {
				req := chatRequest(in)
				req.ThinkingBudget = thinkingBudget
				return req
			}).
			parses(plainText).
			orElse(always(chatFailed)),
	}
}
