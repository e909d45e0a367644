//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"chat-relay/contract"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

type IChatService interface {
	LoadChat(ctx context.Context, cmd chat.LoadChatCommand) ([]chat.Message, error)
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
}

type ChatService struct {
	log      *slog.Logger
	gate     IAccessGate
	messages contract.IMessageRepository
	validate *validator.Validate
}

func NewChatService(log *slog.Logger, gate IAccessGate, messages contract.IMessageRepository) *ChatService {
	return &ChatService{
		log:      log,
		gate:     gate,
		messages: messages,
		validate: validator.New(),
	}
}

// LoadChat returns the whole history between both users, oldest first.
// A missing mutual follow is reported as a chat that does not exist.
func (s *ChatService) LoadChat(ctx context.Context, cmd chat.LoadChatCommand) ([]chat.Message, error) {
	if err := s.check(cmd, cmd.From, cmd.To); err != nil {
		return nil, err
	}
	allowed, err := s.gate.CanExchange(ctx, cmd.From, cmd.To)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", errors.ErrChatNotFound, cmd.RoomKey())
	}
	messages, err := s.messages.GetMessages(ctx, cmd.From, cmd.To)
	if err != nil {
		return nil, storeErr(err)
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	return messages, nil
}

// SendMessage persists the message once the gate allows the exchange.
// Id and timestamp are assigned by the store.
func (s *ChatService) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if err := s.check(cmd, cmd.From, cmd.To); err != nil {
		return chat.Message{}, err
	}
	allowed, err := s.gate.CanExchange(ctx, cmd.From, cmd.To)
	if err != nil {
		return chat.Message{}, err
	}
	if !allowed {
		return chat.Message{}, fmt.Errorf("%w: %s cannot write to %s", errors.ErrForbidden, cmd.From, cmd.To)
	}
	message, err := s.messages.Append(ctx, cmd.From, cmd.To, cmd.Body)
	if err != nil {
		return chat.Message{}, storeErr(err)
	}
	s.log.Debug("Message sent", "room", message.Room(), "id", message.ID)
	return message, nil
}

// check rejects blank fields and identities that cannot form a room key.
func (s *ChatService) check(cmd any, identities ...chat.Identity) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	for _, identity := range identities {
		if err := identity.Validate(); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
		}
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, errors.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrStore, err)
}
