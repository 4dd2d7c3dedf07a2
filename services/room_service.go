package services

import (
	"sort"
	"strings"

	"sikkerchat/repository"
)

type RoomService struct {
	rooms repository.RoomRepository
	msgs  repository.MessageRepository
}

func NewRoomService(rr repository.RoomRepository, mr repository.MessageRepository) *RoomService {
	return &RoomService{rooms: rr, msgs: mr}
}

// List returns the deduplicated union of the explicit registry and every
// distinct room seen on a stored message, alphabetically sorted.
func (s *RoomService) List() ([]string, error) {
	names, err := s.rooms.Names()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names))
	merged := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			merged = append(merged, n)
		}
	}

	msgs, err := s.msgs.List("")
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		if m.Room != "" && !seen[m.Room] {
			seen[m.Room] = true
			merged = append(merged, m.Room)
		}
	}

	sort.Strings(merged)
	return merged, nil
}

// Create trims the name and registers it. The duplicate check runs against
// the explicit registry only, not the merged view; a room known solely from
// messages can still be created explicitly. That asymmetry is deliberate.
func (s *RoomService) Create(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrMissingRoomName
	}
	if err := s.rooms.Add(name); err != nil {
		return "", err
	}
	return name, nil
}
