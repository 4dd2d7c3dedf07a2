package repository

import (
	"sikkerchat/models"
	"sikkerchat/storage"
)

const usersCollection = "users"

type UserRepository interface {
	Create(username, passwordHash string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
}

type FileUserRepo struct {
	store *storage.FileStore
}

func NewFileUserRepo(store *storage.FileStore) *FileUserRepo {
	return &FileUserRepo{store: store}
}

func (r *FileUserRepo) Create(username, passwordHash string) (*models.User, error) {
	l := r.store.Locker(usersCollection)
	l.Lock()
	defer l.Unlock()

	users := []models.User{}
	if err := r.store.Load(usersCollection, &users); err != nil {
		return nil, err
	}

	// case-sensitive exact match
	for _, u := range users {
		if u.Username == username {
			return nil, ErrUserExists
		}
	}

	u := models.User{Username: username, PasswordHash: passwordHash}
	users = append(users, u)
	if err := r.store.Save(usersCollection, users); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *FileUserRepo) FindByUsername(username string) (*models.User, error) {
	l := r.store.Locker(usersCollection)
	l.Lock()
	defer l.Unlock()

	users := []models.User{}
	if err := r.store.Load(usersCollection, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}
