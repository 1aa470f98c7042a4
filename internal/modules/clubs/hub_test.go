package clubs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, clubID int64) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
		_ = hub.ServeWS(w, r, userID, clubID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=7"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var e Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHubDeliversOnlySubscribedClubs(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 1)
	require.Eventually(t, func() bool { return hub.Subscribers(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: EventClubUpdated, ClubID: 2})
	hub.Publish(Event{Type: EventMemberJoined, ClubID: 1, Payload: map[string]int64{"user_id": 9}})

	e := readEvent(t, conn)
	assert.Equal(t, EventMemberJoined, e.Type)
	assert.Equal(t, int64(1), e.ClubID)
}

func TestHubSubscribeAndUnsubscribe(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 1)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "subscribe", "club_id": 2}))
	require.Eventually(t, func() bool { return hub.Subscribers(2) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "unsubscribe", "club_id": 1}))
	require.Eventually(t, func() bool { return hub.Subscribers(1) == 0 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: EventClubDeleted, ClubID: 1})
	hub.Publish(Event{Type: EventClubUpdated, ClubID: 2})

	e := readEvent(t, conn)
	assert.Equal(t, EventClubUpdated, e.Type)
	assert.Equal(t, int64(2), e.ClubID)
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 3)
	require.Eventually(t, func() bool { return hub.Subscribers(3) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Subscribers(3) == 0 }, 2*time.Second, 10*time.Millisecond)

	// no subscribers left; must not block or panic
	hub.Publish(Event{Type: EventClubDeleted, ClubID: 3})
}
