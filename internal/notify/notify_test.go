package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

type recorder struct {
	mu   sync.Mutex
	sent []Notification
	off  bool
}

func (r *recorder) Available() bool { return !r.off }

func (r *recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func occurrenceFixture() relationship.Occurrence {
	return relationship.Occurrence{
		ImportantDate: relationship.ImportantDate{ID: "d1", Title: "Birthday"},
		ContactName:   "Ada",
		Next:          relationship.NewCalendarDate(2024, time.June, 2),
		DaysUntil:     1,
		Label:         "Tomorrow",
	}
}

func TestForOccurrence(t *testing.T) {
	n := ForOccurrence(occurrenceFixture())
	assert.Equal(t, "Birthday (Ada)", n.Title)
	assert.Equal(t, "Tomorrow: 2024-06-02", n.Body)

	o := occurrenceFixture()
	o.ContactName = ""
	assert.Equal(t, "Birthday", ForOccurrence(o).Title)
}

func TestReminders(t *testing.T) {
	due := []relationship.Occurrence{occurrenceFixture(), occurrenceFixture()}

	r := &recorder{}
	assert.Equal(t, 2, Reminders(context.Background(), r, due))
	assert.Len(t, r.sent, 2)

	off := &recorder{off: true}
	assert.Equal(t, 0, Reminders(context.Background(), off, due))
	assert.Empty(t, off.sent)
}

func TestNoop(t *testing.T) {
	var n Notifier = Noop{}
	assert.False(t, n.Available())
	n.Notify(context.Background(), Notification{Title: "x"})
}

func TestHTTPBridge_PostsJSON(t *testing.T) {
	got := make(chan Notification, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var n Notification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&n))
		got <- n
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	b := NewHTTPBridge(srv.URL + "/notify")
	require.True(t, b.Available())
	b.Notify(context.Background(), Notification{Title: "Hello", Body: "World"})

	select {
	case n := <-got:
		assert.Equal(t, Notification{Title: "Hello", Body: "World"}, n)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestHTTPBridge_FailuresAreSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	b := NewHTTPBridge(srv.URL)
	b.Notify(context.Background(), Notification{Title: "x"})

	assert.False(t, NewHTTPBridge("").Available())
}

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakePublisher struct {
	connected bool
	err       error
	topic     string
	qos       byte
	payload   []byte
	calls     int
}

func (p *fakePublisher) IsConnected() bool { return p.connected }

func (p *fakePublisher) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	p.calls++
	p.topic = topic
	p.qos = qos
	p.payload = payload.([]byte)
	return &fakeToken{err: p.err}
}

func TestMQTT_PublishesAtQoS0(t *testing.T) {
	pub := &fakePublisher{connected: true}
	m := &MQTT{client: pub, topic: "bondkeeper/notifications"}

	require.True(t, m.Available())
	m.Notify(context.Background(), Notification{Title: "Hi", Body: "there"})

	assert.Equal(t, 1, pub.calls)
	assert.Equal(t, "bondkeeper/notifications", pub.topic)
	assert.Equal(t, byte(0), pub.qos)
	assert.JSONEq(t, `{"title":"Hi","body":"there"}`, string(pub.payload))
}

func TestMQTT_DisconnectedOrFailing(t *testing.T) {
	pub := &fakePublisher{connected: false}
	m := &MQTT{client: pub, topic: "t"}
	assert.False(t, m.Available())
	m.Notify(context.Background(), Notification{Title: "x"})
	assert.Zero(t, pub.calls)

	pub = &fakePublisher{connected: true, err: errors.New("broker gone")}
	m = &MQTT{client: pub, topic: "t"}
	m.Notify(context.Background(), Notification{Title: "x"})
	assert.Equal(t, 1, pub.calls)
	m.Close()
}
