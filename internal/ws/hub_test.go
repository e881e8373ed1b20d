package ws

import (
	"sync"
	"testing"
	"time"
)

func TestNewRoom(t *testing.T) {
	room := NewRoom("myRoom")
	if room == nil {
		t.Fatal("NewRoom() returned nil")
	}
	if room.Code() != "myRoom" {
		t.Errorf("Code() = %q, want myRoom", room.Code())
	}
	if room.Online() != 0 {
		t.Errorf("Online() = %d, want 0", room.Online())
	}
}

func TestRoom_RegisterUnregister(t *testing.T) {
	room := NewRoom("myRoom")
	go room.Run()

	client := &Client{
		room: room,
		name: "alice",
		send: make(chan []byte, 256),
	}

	room.register <- client
	time.Sleep(10 * time.Millisecond)

	if room.Online() != 1 {
		t.Errorf("Online() after register = %d, want 1", room.Online())
	}

	room.unregister <- client
	time.Sleep(10 * time.Millisecond)

	if room.Online() != 0 {
		t.Errorf("Online() after unregister = %d, want 0", room.Online())
	}
}

func TestRoom_Broadcast_AllMembersIncludingSender(t *testing.T) {
	room := NewRoom("myRoom")
	go room.Run()

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = &Client{
			room: room,
			name: "user" + string(rune('0'+i)),
			send: make(chan []byte, 256),
		}
		room.register <- clients[i]
	}
	time.Sleep(20 * time.Millisecond)

	testMsg := []byte(`{"name":"user0","message":"hello","dateSent":"T1"}`)
	room.broadcast <- testMsg

	var wg sync.WaitGroup
	received := make([]bool, len(clients))
	for i, c := range clients {
		wg.Add(1)
		go func(idx int, client *Client) {
			defer wg.Done()
			select {
			case msg := <-client.send:
				if string(msg) == string(testMsg) {
					received[idx] = true
				}
			case <-time.After(100 * time.Millisecond):
			}
		}(i, c)
	}
	wg.Wait()

	for i, got := range received {
		if !got {
			t.Errorf("client %d did not receive the broadcast", i)
		}
	}
}

func TestRoom_SlowClientDropped(t *testing.T) {
	room := NewRoom("myRoom")
	go room.Run()

	// send buffer of zero: the first broadcast cannot be delivered
	slow := &Client{room: room, name: "slow", send: make(chan []byte)}
	room.register <- slow
	time.Sleep(10 * time.Millisecond)

	room.broadcast <- []byte("x")
	time.Sleep(10 * time.Millisecond)

	if room.Online() != 0 {
		t.Errorf("Online() after dropping slow client = %d, want 0", room.Online())
	}
}

func TestRoom_ConcurrentRegister(t *testing.T) {
	room := NewRoom("myRoom")
	go room.Run()

	var wg sync.WaitGroup
	numClients := 10
	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			client := &Client{
				room: room,
				name: "user",
				send: make(chan []byte, 256),
			}
			room.register <- client
		}(i)
	}

	wg.Wait()
	time.Sleep(50 * time.Millisecond)

	if room.Online() != numClients {
		t.Errorf("Online() after concurrent register = %d, want %d", room.Online(), numClients)
	}
}
