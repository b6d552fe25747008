package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
)

func runningOrderJSON(status string) string {
	return fmt.Sprintf(`{"_id":"o1","customerId":{"_id":"c1","firstName":"Asha","lastName":"Perera"},"status":%q,"bid":500}`, status)
}

func TestActiveOrderRefreshNone(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no running order"})
	})
	client, profile := newEnv(t, mux)
	active := NewActiveOrder(client, profile, confirmYes, nil, testLogger())

	require.NoError(t, active.Refresh(context.Background()), "no running order is not an error")
	assert.Nil(t, active.Order())
}

func TestActiveOrderCompleteHappyPath(t *testing.T) {
	status := models.OrderStatusInProgress
	var completeCalls int
	var gotCustomer string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
		if models.IsTerminalStatus(status) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, runningOrderJSON(status))
	})
	mux.HandleFunc("/api/requests/complete/", func(w http.ResponseWriter, r *http.Request) {
		completeCalls++
		gotCustomer = r.URL.Query().Get("customerId")
		status = models.OrderStatusCompleted
		w.WriteHeader(http.StatusOK)
	})
	client, profile := newEnv(t, mux)

	var confirmCalls int
	confirm := func(string) bool { confirmCalls++; return true }
	active := NewActiveOrder(client, profile, confirm, nil, testLogger())

	ctx := context.Background()
	require.NoError(t, active.Refresh(ctx))
	require.NotNil(t, active.Order())

	require.NoError(t, active.Complete(ctx))
	assert.Equal(t, 1, completeCalls)
	assert.Equal(t, 1, confirmCalls)
	assert.Equal(t, "c1", gotCustomer)
	assert.Nil(t, active.Order(), "settled order disappears after the refetch")
}

func TestActiveOrderCancelFromPending(t *testing.T) {
	var cancelCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, runningOrderJSON(models.OrderStatusPending))
	})
	mux.HandleFunc("/api/requests/cancel/", func(w http.ResponseWriter, r *http.Request) {
		cancelCalls++
		w.WriteHeader(http.StatusOK)
	})
	client, profile := newEnv(t, mux)
	active := NewActiveOrder(client, profile, confirmYes, nil, testLogger())

	ctx := context.Background()
	require.NoError(t, active.Refresh(ctx))
	require.NoError(t, active.Cancel(ctx))
	assert.Equal(t, 1, cancelCalls)
}

func TestActiveOrderTerminalGuards(t *testing.T) {
	for _, status := range []string{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			var settleCalls, confirmCalls int
			mux := http.NewServeMux()
			mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, runningOrderJSON(status))
			})
			mux.HandleFunc("/api/requests/complete/", func(w http.ResponseWriter, r *http.Request) { settleCalls++ })
			mux.HandleFunc("/api/requests/cancel/", func(w http.ResponseWriter, r *http.Request) { settleCalls++ })
			client, profile := newEnv(t, mux)

			confirm := func(string) bool { confirmCalls++; return true }
			active := NewActiveOrder(client, profile, confirm, nil, testLogger())

			ctx := context.Background()
			require.NoError(t, active.Refresh(ctx))

			assert.ErrorIs(t, active.Complete(ctx), ErrOrderFinished)
			assert.ErrorIs(t, active.Cancel(ctx), ErrOrderFinished)
			assert.Zero(t, settleCalls, "terminal orders never hit the backend")
			assert.Zero(t, confirmCalls, "guard runs before the prompt")
		})
	}
}

func TestActiveOrderConfirmDeclined(t *testing.T) {
	var completeCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, runningOrderJSON(models.OrderStatusInProgress))
	})
	mux.HandleFunc("/api/requests/complete/", func(w http.ResponseWriter, r *http.Request) { completeCalls++ })
	client, profile := newEnv(t, mux)
	active := NewActiveOrder(client, profile, confirmNo, nil, testLogger())

	ctx := context.Background()
	require.NoError(t, active.Refresh(ctx))
	assert.ErrorIs(t, active.Complete(ctx), ErrAborted)
	assert.Zero(t, completeCalls)
}

func TestActiveOrderSettleWithoutOrder(t *testing.T) {
	client, profile := newEnv(t, nil)
	active := NewActiveOrder(client, profile, confirmYes, nil, testLogger())
	assert.ErrorIs(t, active.Complete(context.Background()), api.ErrNoActiveOrder)
	assert.ErrorIs(t, active.Cancel(context.Background()), api.ErrNoActiveOrder)
}
