package repository

import (
	"sikkerchat/storage"
)

const roomsCollection = "rooms"

type RoomRepository interface {
	// Names returns the explicit registry only; rooms known solely from
	// messages are merged in at the service layer.
	Names() ([]string, error)
	Add(name string) error
}

type FileRoomRepo struct {
	store *storage.FileStore
}

func NewFileRoomRepo(store *storage.FileStore) *FileRoomRepo {
	return &FileRoomRepo{store: store}
}

func (r *FileRoomRepo) Names() ([]string, error) {
	l := r.store.Locker(roomsCollection)
	l.Lock()
	defer l.Unlock()

	rooms := []string{}
	if err := r.store.Load(roomsCollection, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *FileRoomRepo) Add(name string) error {
	l := r.store.Locker(roomsCollection)
	l.Lock()
	defer l.Unlock()

	rooms := []string{}
	if err := r.store.Load(roomsCollection, &rooms); err != nil {
		return err
	}
	for _, existing := range rooms {
		if existing == name {
			return ErrRoomExists
		}
	}
	rooms = append(rooms, name)
	return r.store.Save(roomsCollection, rooms)
}
