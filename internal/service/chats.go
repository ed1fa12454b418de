// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
)

// ChatService handles two-party chats and their embedded messages.
// Persistence happens here on the HTTP path; the websocket hub only
// relays events and stores nothing.
type ChatService struct {
	chats ChatStore
	users UserStore
}

// GetAllForUser lists every chat the user participates in.
func (s *ChatService) GetAllForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	return s.chats.FindForUser(ctx, userID)
}

// CreateOrGet returns the existing chat between the two users or
// creates one. Idempotent: two sequential calls yield the same chat.
// Fails when either side has blocked the other.
func (s *ChatService) CreateOrGet(ctx context.Context, firstID, secondID primitive.ObjectID) (*models.Chat, error) {
	first, err := findUser(ctx, s.users, firstID, "Invalid participants ids")
	if err != nil {
		return nil, err
	}
	second, err := findUser(ctx, s.users, secondID, "Invalid participants ids")
	if err != nil {
		return nil, err
	}

	if first.HasBlocked(secondID) || second.HasBlocked(firstID) {
		return nil, apperr.BadRequest("Cannot chat with a blocked user")
	}

	existing, err := s.chats.FindByParticipants(ctx, firstID, secondID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	chat := &models.Chat{
		Participants: []primitive.ObjectID{firstID, secondID},
		Messages:     []models.Message{},
	}
	if err := s.chats.Save(ctx, chat); err != nil {
		return nil, err
	}

	first.Chats = append(first.Chats, chat.ID)
	second.Chats = append(second.Chats, chat.ID)
	if err := s.users.Save(ctx, first); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, second); err != nil {
		return nil, err
	}
	return chat, nil
}

// SendMessage appends a message to the chat. The sender must be a
// participant.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID primitive.ObjectID, content string) (*models.Message, error) {
	chat, err := findChat(ctx, s.chats, chatID, "Invalid chat id")
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, apperr.BadRequest("Sender is not a participant in this chat")
	}

	message := models.Message{
		ID:        primitive.NewObjectID(),
		Sender:    senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	chat.Messages = append(chat.Messages, message)

	if err := s.chats.Save(ctx, chat); err != nil {
		return nil, err
	}
	return &message, nil
}

// UpdateMessage replaces the content of one message. Only the original
// sender may edit it.
func (s *ChatService) UpdateMessage(ctx context.Context, chatID, senderID, messageID primitive.ObjectID, content string) error {
	chat, idx, err := s.messageForSender(ctx, chatID, senderID, messageID)
	if err != nil {
		return err
	}
	chat.Messages[idx].Content = content
	return s.chats.Save(ctx, chat)
}

// DeleteMessage removes one message from the chat. Only the original
// sender may delete it.
func (s *ChatService) DeleteMessage(ctx context.Context, chatID, senderID, messageID primitive.ObjectID) error {
	chat, idx, err := s.messageForSender(ctx, chatID, senderID, messageID)
	if err != nil {
		return err
	}
	chat.Messages = append(chat.Messages[:idx], chat.Messages[idx+1:]...)
	return s.chats.Save(ctx, chat)
}

// messageForSender locates a message and authorizes the sender against
// it, sharing the guard sequence of update and delete.
func (s *ChatService) messageForSender(ctx context.Context, chatID, senderID, messageID primitive.ObjectID) (*models.Chat, int, error) {
	chat, err := findChat(ctx, s.chats, chatID, "Invalid chat id")
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, 0, apperr.BadRequest("Sender is not a participant in this chat")
	}

	idx := -1
	for i := range chat.Messages {
		if chat.Messages[i].ID == messageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, 0, apperr.BadRequest("Invalid message id")
	}
	if chat.Messages[idx].Sender != senderID {
		return nil, 0, apperr.BadRequest("User is not message sender")
	}
	return chat, idx, nil
}
