package flows

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/state"
	"github.com/paanihub/paanictl/internal/stream"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeChannel is an in-memory stand-in for the websocket channel.
type fakeChannel struct {
	mu       sync.Mutex
	handlers map[string][]stream.Handler
	emitted  []fakeMessage
	closed   bool
}

type fakeMessage struct {
	Type    string
	Payload []byte
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{handlers: make(map[string][]stream.Handler)}
}

func (f *fakeChannel) On(eventType string, fn stream.Handler) {
	f.mu.Lock()
	f.handlers[eventType] = append(f.handlers[eventType], fn)
	f.mu.Unlock()
}

func (f *fakeChannel) Emit(eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.emitted = append(f.emitted, fakeMessage{Type: eventType, Payload: data})
	f.mu.Unlock()
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// push delivers a server-side event to the registered handlers.
func (f *fakeChannel) push(t *testing.T, eventType string, payload interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	f.mu.Lock()
	handlers := append([]stream.Handler(nil), f.handlers[eventType]...)
	f.mu.Unlock()
	for _, fn := range handlers {
		fn(data)
	}
}

func (f *fakeChannel) sent(eventType string) []fakeMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeMessage
	for _, msg := range f.emitted {
		if msg.Type == eventType {
			out = append(out, msg)
		}
	}
	return out
}

func (f *fakeChannel) opener() ChannelOpener {
	return func(ctx context.Context) (LiveChannel, error) { return f, nil }
}

// fakeGeo resolves every query to a fixed location.
type fakeGeo struct {
	loc models.Location
}

func (g fakeGeo) Geocode(ctx context.Context, address string) (models.Location, error) {
	return g.loc, nil
}

func (g fakeGeo) ReverseGeocode(ctx context.Context, lat, lng float64) (models.Location, error) {
	return g.loc, nil
}

func confirmYes(string) bool { return true }
func confirmNo(string) bool  { return false }

const driverProfileJSON = `{
	"profileId": "p1", "userId": "u1",
	"firstName": "Asha", "lastName": "Perera",
	"email": "asha@example.com", "phoneNumber": "0771234567",
	"city": "Colombo", "zipCode": "00100", "address": "12 Lake Road",
	"licenceNo": "DL-0012345", "carNo": "WP-1234",
	"gender": "female", "role": "driver"
}`

// newEnv builds an API client against the given mux plus a profile state
// already synced from /api/employee/user-profile.
func newEnv(t *testing.T, mux *http.ServeMux) (*api.Client, *state.Profile) {
	t.Helper()
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.HandleFunc("/api/employee/user-profile", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, driverProfileJSON)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, 5*time.Second, testLogger())
	require.NoError(t, err)

	profile := state.NewProfile(client, testLogger())
	require.NoError(t, profile.Sync(context.Background(), true))
	return client, profile
}
