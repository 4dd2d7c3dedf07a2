package services

import "errors"

var (
	ErrMissingField       = errors.New("missing username/password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingRoomName    = errors.New("missing room name")
)
