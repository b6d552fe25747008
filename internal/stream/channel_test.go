package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var upgrader = websocket.Upgrader{}

// echoServer upgrades the connection and replies to every frame with a
// fixed event.
func echoServer(t *testing.T, reply Message) (*httptest.Server, chan Message) {
	t.Helper()
	received := make(chan Message, 4)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			received <- msg

			out, _ := json.Marshal(reply)
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return server, received
}

func TestDialRewritesScheme(t *testing.T) {
	assert.Equal(t, "ws://host:3001", toWebsocketURL("http://host:3001"))
	assert.Equal(t, "wss://host", toWebsocketURL("https://host"))
	assert.Equal(t, "ws://host", toWebsocketURL("ws://host"))
}

func TestChannelEmitAndReceive(t *testing.T) {
	replyPayload, _ := json.Marshal(map[string]string{"orderId": "o1", "status": "inprogress"})
	server, received := echoServer(t, Message{Type: "orderStatusUpdate", Payload: replyPayload})

	channel, err := Dial(context.Background(), server.URL, testLogger())
	require.NoError(t, err)
	defer channel.Close()

	got := make(chan json.RawMessage, 1)
	channel.On("orderStatusUpdate", func(payload json.RawMessage) {
		got <- payload
	})

	require.NoError(t, channel.Emit("acceptRequest", map[string]string{"orderId": "o1", "driverId": "d1"}))

	select {
	case msg := <-received:
		assert.Equal(t, "acceptRequest", msg.Type)
		var sent map[string]string
		require.NoError(t, json.Unmarshal(msg.Payload, &sent))
		assert.Equal(t, "o1", sent["orderId"])
	case <-time.After(time.Second):
		t.Fatal("server never received the frame")
	}

	select {
	case payload := <-got:
		var update map[string]string
		require.NoError(t, json.Unmarshal(payload, &update))
		assert.Equal(t, "inprogress", update["status"])
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestChannelCloseIdempotent(t *testing.T) {
	server, _ := echoServer(t, Message{Type: "noop"})
	channel, err := Dial(context.Background(), server.URL, testLogger())
	require.NoError(t, err)

	require.NoError(t, channel.Close())
	require.NoError(t, channel.Close())

	select {
	case <-channel.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel never closed")
	}

	assert.Error(t, channel.Emit("newRequest", map[string]string{}), "emit after close fails")
}

func TestChannelUnhandledEventDropped(t *testing.T) {
	replyPayload, _ := json.Marshal(map[string]string{"x": "y"})
	server, received := echoServer(t, Message{Type: "somethingElse", Payload: replyPayload})

	channel, err := Dial(context.Background(), server.URL, testLogger())
	require.NoError(t, err)
	defer channel.Close()

	handled := make(chan struct{}, 1)
	channel.On("newRequestBroadcast", func(json.RawMessage) { handled <- struct{}{} })

	require.NoError(t, channel.Emit("ping", nil))
	<-received

	select {
	case <-handled:
		t.Fatal("handler ran for a different event type")
	case <-time.After(100 * time.Millisecond):
	}
}
