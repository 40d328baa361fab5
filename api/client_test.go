package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayadmin/utils"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil, nil)
}

func TestBearerAttachedFromContext(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	})
	ctx := WithToken(context.Background(), "tok123")
	if err := client.Get(ctx, "/api/V1/bookings", nil); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer tok123" {
		t.Errorf("authorization header: got %q", got)
	}
}

func TestExemptPathsCarryNoBearer(t *testing.T) {
	for _, path := range []string{"/api/V1/login", "/api/V1/users"} {
		var got string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte("{}"))
		})
		ctx := WithToken(context.Background(), "tok123")
		if err := client.Get(ctx, path, nil); err != nil {
			t.Fatal(err)
		}
		if got != "" {
			t.Errorf("%s must not carry a bearer, got %q", path, got)
		}
	}
}

func TestBare401GetsFixedMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	err := client.Get(context.Background(), "/api/V1/bookings", nil)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %v", err)
	}
	if apiErr.Message != DeniedMessage {
		t.Errorf("bare 401 must be normalized, got %q", apiErr.Message)
	}
}

func Test401WithServerMessageKeepsIt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})
	err := client.Get(context.Background(), "/api/V1/bookings", nil)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %v", err)
	}
	if apiErr.Message != "token expired" {
		t.Errorf("server-provided message must survive, got %q", apiErr.Message)
	}
}

func TestErrorMessageFromErrorField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "range too long"})
	})
	err := client.Get(context.Background(), "/api/V1/bookings/calendar/5", nil)
	apiErr, ok := err.(*Error)
	if !ok || apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "range too long" {
		t.Errorf("got %v", err)
	}
}

func TestLoadingStateTracksRequests(t *testing.T) {
	loading := utils.NewLoadingState()
	var sawBusy bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawBusy = loading.Busy()
	}))
	defer srv.Close()
	client := NewClient(srv.URL, 5*time.Second, loading, nil)

	if err := client.Get(context.Background(), "/api/V1/bookings", nil); err != nil {
		t.Fatal(err)
	}
	if !sawBusy {
		t.Error("loading state should be busy while a request is in flight")
	}
	if loading.Busy() {
		t.Error("loading state should be idle after the request completes")
	}
}
