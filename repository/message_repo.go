package repository

import (
	"sikkerchat/models"
	"sikkerchat/storage"
)

const messagesCollection = "messages"

type MessageRepository interface {
	Append(msg models.Message) (models.Message, error)
	// List returns messages in append order; a non-empty room keeps only
	// exact matches, preserving relative order.
	List(room string) ([]models.Message, error)
}

type FileMessageRepo struct {
	store *storage.FileStore
}

func NewFileMessageRepo(store *storage.FileStore) *FileMessageRepo {
	return &FileMessageRepo{store: store}
}

func (r *FileMessageRepo) Append(msg models.Message) (models.Message, error) {
	l := r.store.Locker(messagesCollection)
	l.Lock()
	defer l.Unlock()

	msgs := []models.Message{}
	if err := r.store.Load(messagesCollection, &msgs); err != nil {
		return models.Message{}, err
	}
	msgs = append(msgs, msg)
	if err := r.store.Save(messagesCollection, msgs); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (r *FileMessageRepo) List(room string) ([]models.Message, error) {
	l := r.store.Locker(messagesCollection)
	l.Lock()
	defer l.Unlock()

	msgs := []models.Message{}
	if err := r.store.Load(messagesCollection, &msgs); err != nil {
		return nil, err
	}
	if room == "" {
		return msgs, nil
	}
	filtered := []models.Message{}
	for _, m := range msgs {
		if m.Room == room {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
