package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/willowmind/companion-backend/internal/config"
	"github.com/willowmind/companion-backend/internal/model/chat"
)

// Service encapsulates the chat completion capability. Plain completions
// run through a prompt chain; vision completions talk to the model
// directly because they carry multi-part content.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model from configuration and compiles the
// completion chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// Complete runs one chat completion with the given system prompt.
func (s *Service) Complete(ctx context.Context, systemPrompt, userText string, maxTokens int) (string, error) {
	input := map[string]any{
		"system": systemPrompt,
		"query":  userText,
	}

	response, err := s.chain.Invoke(ctx, input,
		compose.WithChatModelOption(model.WithMaxTokens(maxTokens)))
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	log.Printf("[ai] completion ok, length=%d", len(response.Content))
	return strings.TrimSpace(response.Content), nil
}

// CompleteVision runs one completion over a text prompt paired with an
// image, passed inline as a base64 data URL.
func (s *Service) CompleteVision(ctx context.Context, promptText string, image *chat.Attachment, maxTokens int) (string, error) {
	contentType := image.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		contentType, base64.StdEncoding.EncodeToString(image.Data))

	message := &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{
				Type: schema.ChatMessagePartTypeText,
				Text: promptText,
			},
			{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:    dataURL,
					Detail: schema.ImageURLDetailAuto,
				},
			},
		},
	}

	response, err := s.chatModel.Generate(ctx, []*schema.Message{message},
		model.WithMaxTokens(maxTokens))
	if err != nil {
		return "", fmt.Errorf("failed to run vision completion: %w", err)
	}

	log.Printf("[ai] vision completion ok, length=%d", len(response.Content))
	return strings.TrimSpace(response.Content), nil
}
