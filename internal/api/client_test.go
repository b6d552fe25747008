package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paanihub/paanictl/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, 5*time.Second, testLogger())
	require.NoError(t, err)
	return client, server
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/employee/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		json.NewEncoder(w).Encode(map[string]string{"role": "driver"})
	})
	mux.HandleFunc("/api/employee/protected", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "no session"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"role": "driver"})
	})

	client, _ := newTestClient(t, mux)
	ctx := context.Background()

	role, err := client.Login(ctx, "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "driver", role)

	session := client.CheckSession(ctx)
	assert.True(t, session.Authenticated, "cookie from login must ride along")
	assert.Equal(t, "driver", session.Role)
}

func TestLoginUnverifiedEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/employee/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "Please verify your email before logging in"})
	})

	client, _ := newTestClient(t, mux)
	_, err := client.Login(context.Background(), "asha@example.com", "secret")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestLoginWrongPassword(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/employee/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	})

	client, _ := newTestClient(t, mux)
	_, err := client.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailNotVerified)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestCheckSessionFailureMeansLoggedOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/employee/protected", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)
	session := client.CheckSession(context.Background())
	assert.False(t, session.Authenticated)
	assert.Empty(t, session.Role)
}

func TestPendingRequestsParsing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/pending", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"_id":"o1","customerId":"c1","customerName":"Asha","toLocation":{"lat":6.9,"lng":79.8,"address":"Colombo"},"bidAmount":"500"},
			{"orderId":"o2","customerId":"c2","to":{"lat":7.2,"lng":80.6,"address":"Kandy"},"bidAmount":"750","status":"pending"}
		]`)
	})

	client, _ := newTestClient(t, mux)
	requests, err := client.PendingRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, "o1", requests[0].OrderID)
	assert.Equal(t, models.OrderStatusPending, requests[0].Status)
	assert.Equal(t, "Colombo", requests[0].To.Address)
	assert.Equal(t, "o2", requests[1].OrderID)
}

func TestDeclinePendingQueryParams(t *testing.T) {
	var gotMethod, gotPath, gotCustomer, gotDriver string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/pending/", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCustomer = r.URL.Query().Get("customerId")
		gotDriver = r.URL.Query().Get("driverId")
		w.WriteHeader(http.StatusOK)
	})

	client, _ := newTestClient(t, mux)
	err := client.DeclinePending(context.Background(), "o1", "c1", "d1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/requests/pending/o1", gotPath)
	assert.Equal(t, "c1", gotCustomer)
	assert.Equal(t, "d1", gotDriver)
}

func TestRunningOrderNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no running order"})
	})

	client, _ := newTestClient(t, mux)
	order, err := client.RunningOrder(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNoActiveOrder)
	assert.Nil(t, order)
}

func TestRunningOrderParsesCustomerShapes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/running/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"_id":"o1","customerId":{"_id":"c1","firstName":"Asha","lastName":"Perera"},"status":"inprogress","bid":500}`)
	})

	client, _ := newTestClient(t, mux)
	order, err := client.RunningOrder(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "c1", order.Customer.ID)
	assert.Equal(t, "Asha", order.Customer.FirstName)
	assert.Equal(t, models.OrderStatusInProgress, order.Status)
}

func TestCompleteOrderSendsCustomerID(t *testing.T) {
	var gotCustomer string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/complete/", func(w http.ResponseWriter, r *http.Request) {
		gotCustomer = r.URL.Query().Get("customerId")
		w.WriteHeader(http.StatusOK)
	})

	client, _ := newTestClient(t, mux)
	require.NoError(t, client.CompleteOrder(context.Background(), "o1", "c1"))
	assert.Equal(t, "c1", gotCustomer)
}

func TestSendSupportEmail(t *testing.T) {
	var got map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/support/email", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	client, _ := newTestClient(t, mux)
	err := client.SendSupportEmail(context.Background(), "Asha", "asha@example.com", "water was late")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got["name"])
	assert.Equal(t, "asha@example.com", got["email"])
	assert.Equal(t, "water was late", got["message"])
}
