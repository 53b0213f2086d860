package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"slide-presenter/internal/models"
)

func TestValidateRemoteCommand(t *testing.T) {
	cases := []struct {
		cmd *models.RemoteCommand
		ok  bool
	}{
		{&models.RemoteCommand{Action: "next"}, true},
		{&models.RemoteCommand{Action: "prev"}, true},
		{&models.RemoteCommand{Action: "reveal"}, true},
		{&models.RemoteCommand{Action: "goto", Slide: 3}, true},
		{&models.RemoteCommand{Action: "goto", Slide: 0}, false},
		{&models.RemoteCommand{Action: "jump"}, false},
		{nil, false},
	}
	for _, tc := range cases {
		err := ValidateRemoteCommand(tc.cmd)
		if tc.ok && err != nil {
			t.Fatalf("ValidateRemoteCommand(%+v) unexpected error: %v", tc.cmd, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ValidateRemoteCommand(%+v) expected error", tc.cmd)
		}
	}
}

func TestBroadcastReachesRegisteredClient(t *testing.T) {
	remote := NewRemoteService()
	defer remote.CloseAll()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		remote.Register("demo", conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the server side to register the connection
	deadline := time.Now().Add(2 * time.Second)
	for remote.ClientCount("demo") == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cmd := &models.RemoteCommand{Action: "goto", Slide: 2}
	if err := remote.Broadcast("demo", cmd); err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got models.RemoteCommand
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Action != "goto" || got.Slide != 2 {
		t.Fatalf("got=%+v want goto slide 2", got)
	}
}

func TestBroadcastRejectsInvalidCommand(t *testing.T) {
	remote := NewRemoteService()
	if err := remote.Broadcast("demo", &models.RemoteCommand{Action: "bogus"}); err == nil {
		t.Fatalf("expected error for invalid command")
	}
}

func TestRegisterUnregisterBookkeeping(t *testing.T) {
	remote := NewRemoteService()
	// Bookkeeping works without a live socket
	conn := &websocket.Conn{}
	remote.Register("demo", conn)
	if got := remote.ClientCount("demo"); got != 1 {
		t.Fatalf("count=%d want=1", got)
	}
	remote.Unregister("demo", &websocket.Conn{})
	if got := remote.ClientCount("demo"); got != 1 {
		t.Fatalf("count=%d want=1 after unregistering unknown conn", got)
	}
	remote.Unregister("demo", conn)
	if got := remote.ClientCount("demo"); got != 0 {
		t.Fatalf("count=%d want=0", got)
	}
	// Unregistering for a deck with no clients is a no-op
	remote.Unregister("other", conn)
}
