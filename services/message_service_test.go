package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sikkerchat/models"
	"sikkerchat/repository"
	"sikkerchat/storage"
)

type recordingBroadcaster struct {
	got []models.Message
}

func (b *recordingBroadcaster) BroadcastMessage(msg models.Message) {
	b.got = append(b.got, msg)
}

func newMessageService(t *testing.T) (*MessageService, *recordingBroadcaster) {
	t.Helper()
	store := storage.NewFileStore(t.TempDir())
	hub := &recordingBroadcaster{}
	return NewMessageService(repository.NewFileMessageRepo(store), hub), hub
}

func TestAppendDefaults(t *testing.T) {
	svc, _ := newMessageService(t)

	msg, err := svc.Append("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSender, msg.Sender)
	assert.Equal(t, DefaultRoom, msg.Room)
	assert.Empty(t, msg.Ciphertext)
	assert.NotZero(t, msg.Timestamp)
}

func TestAppendAuthorIndependentOfSender(t *testing.T) {
	svc, _ := newMessageService(t)

	msg, err := svc.Append("spoofed", "c1", "Lobby", "alice")
	require.NoError(t, err)
	assert.Equal(t, "spoofed", msg.Sender)
	assert.Equal(t, "alice", msg.Author)
}

func TestAppendTimestampsNonDecreasing(t *testing.T) {
	svc, _ := newMessageService(t)

	var prev int64
	for i := 0; i < 5; i++ {
		msg, err := svc.Append("a", "c", "", "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, msg.Timestamp, prev)
		prev = msg.Timestamp
	}
}

func TestListFilterIsOrderedSubsequence(t *testing.T) {
	svc, _ := newMessageService(t)

	for _, m := range []struct{ cipher, room string }{
		{"c1", "X"}, {"c2", "Y"}, {"c3", "X"}, {"c4", "x"}, {"c5", "X"},
	} {
		_, err := svc.Append("a", m.cipher, m.room, "")
		require.NoError(t, err)
	}

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 5)

	// exact, case-sensitive match only, relative order preserved
	filtered, err := svc.List("X")
	require.NoError(t, err)
	require.Len(t, filtered, 3)
	assert.Equal(t, "c1", filtered[0].Ciphertext)
	assert.Equal(t, "c3", filtered[1].Ciphertext)
	assert.Equal(t, "c5", filtered[2].Ciphertext)
}

func TestListEmptyStoreIsEmptyNotError(t *testing.T) {
	svc, _ := newMessageService(t)

	msgs, err := svc.List("")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestAppendBroadcastsStoredMessage(t *testing.T) {
	svc, hub := newMessageService(t)

	msg, err := svc.Append("a", "c1", "Lobby", "alice")
	require.NoError(t, err)

	require.Len(t, hub.got, 1)
	assert.Equal(t, *msg, hub.got[0])
}
