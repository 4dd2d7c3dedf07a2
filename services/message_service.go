package services

import (
	"time"

	"sikkerchat/models"
	"sikkerchat/repository"
)

const (
	DefaultSender = "Unknown"
	DefaultRoom   = "Prototype"
)

// MessageBroadcaster interface to avoid import cycles with the ws hub
type MessageBroadcaster interface {
	BroadcastMessage(msg models.Message)
}

type MessageService struct {
	msgs repository.MessageRepository
	hub  MessageBroadcaster
}

func NewMessageService(mr repository.MessageRepository, hub MessageBroadcaster) *MessageService {
	return &MessageService{msgs: mr, hub: hub}
}

// Append stores a message. The ciphertext is opaque to the server and may
// be empty. The timestamp is assigned here, never by the client. When the
// auth gate is on, author carries the verified token's username and is
// recorded regardless of the client-supplied sender.
func (s *MessageService) Append(sender, ciphertext, room, author string) (*models.Message, error) {
	if sender == "" {
		sender = DefaultSender
	}
	if room == "" {
		room = DefaultRoom
	}

	msg := models.Message{
		Sender:     sender,
		Ciphertext: ciphertext,
		Timestamp:  time.Now().Unix(),
		Room:       room,
		Author:     author,
	}

	stored, err := s.msgs.Append(msg)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastMessage(stored)
	}
	return &stored, nil
}

func (s *MessageService) List(room string) ([]models.Message, error) {
	return s.msgs.List(room)
}
