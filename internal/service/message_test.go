package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_SaveAndListAll(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserService(gdb)
	msgs := NewMessageService(gdb)

	alice, err := users.LoginOrCreate("alice")
	require.NoError(t, err)
	bob, err := users.LoginOrCreate("bob")
	require.NoError(t, err)

	_, err = msgs.Save(alice.ID, "hi", "T1")
	require.NoError(t, err)
	_, err = msgs.Save(bob.ID, "hello", "T2")
	require.NoError(t, err)

	assert.EqualValues(t, 2, countMessages(t, gdb))

	all, err := msgs.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "alice", all[0].Name)
	assert.Equal(t, "hi", all[0].Body)
	assert.Equal(t, "T1", all[0].DateCreated)

	assert.Equal(t, "bob", all[1].Name)
	assert.Equal(t, "hello", all[1].Body)
	assert.Equal(t, "T2", all[1].DateCreated)
}

func TestMessageService_ListAll_Empty(t *testing.T) {
	gdb := newTestDB(t)
	msgs := NewMessageService(gdb)

	all, err := msgs.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMessageService_ListByAuthor(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserService(gdb)
	msgs := NewMessageService(gdb)

	alice, err := users.LoginOrCreate("alice")
	require.NoError(t, err)
	bob, err := users.LoginOrCreate("bob")
	require.NoError(t, err)

	_, err = msgs.Save(alice.ID, "hi", "T1")
	require.NoError(t, err)
	_, err = msgs.Save(bob.ID, "hello", "T2")
	require.NoError(t, err)
	_, err = msgs.Save(alice.ID, "still here", "T3")
	require.NoError(t, err)

	mine, err := msgs.ListByAuthor("alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, m := range mine {
		assert.Equal(t, "alice", m.Name)
	}
	assert.Equal(t, "hi", mine[0].Body)
	assert.Equal(t, "still here", mine[1].Body)

	// history 必须是 chat 全量列表的严格子集。
	all, err := msgs.ListAll()
	require.NoError(t, err)
	assert.Subset(t, all, mine)
}

func TestMessageService_ListByAuthor_NoMessages(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserService(gdb)
	msgs := NewMessageService(gdb)

	_, err := users.LoginOrCreate("bob")
	require.NoError(t, err)

	mine, err := msgs.ListByAuthor("bob")
	require.NoError(t, err)
	assert.Empty(t, mine)
}
