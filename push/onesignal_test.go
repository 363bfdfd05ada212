package push

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/medreminder/interfaces"
)

func TestNewOneSignalRequiresCredentials(t *testing.T) {
	_, err := NewOneSignal(OneSignalOptions{AppID: "app"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestOneSignalPush(t *testing.T) {
	var got oneSignalRequest
	var auth, path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"b98881cc-1e94-4366-bbd9-db8f3429292b","recipients":1}`))
	}))
	defer server.Close()

	o, err := NewOneSignal(OneSignalOptions{
		BaseURL:        server.URL,
		AppID:          "app-id",
		APIKey:         "secret",
		SubscriptionID: "sub-1",
		Timeout:        time.Second,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = o.Push(context.Background(), interfaces.PushRequest{Title: "Medicine Alert", Message: "Refill soon"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if path != "/notifications" {
		t.Errorf("Expected /notifications, got %s", path)
	}
	if auth != "Basic secret" {
		t.Errorf("Expected basic auth header, got %q", auth)
	}
	if got.AppID != "app-id" {
		t.Errorf("Expected app id, got %q", got.AppID)
	}
	if len(got.IncludeSubscriptionIDs) != 1 || got.IncludeSubscriptionIDs[0] != "sub-1" {
		t.Errorf("Expected subscription sub-1, got %v", got.IncludeSubscriptionIDs)
	}
	if got.Headings["en"] != "Medicine Alert" || got.Contents["en"] != "Refill soon" {
		t.Errorf("Expected title and message, got %v / %v", got.Headings, got.Contents)
	}
	if got.URL != "" || got.ChromeWebIcon != "" {
		t.Errorf("Expected url and icon to be omitted, got %q %q", got.URL, got.ChromeWebIcon)
	}
}

func TestOneSignalPushErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"server error", http.StatusInternalServerError, `{"errors":["internal"]}`, "status=500"},
		{"unauthorized", http.StatusForbidden, `{"errors":["Access denied"]}`, "status=403"},
		{"rejected", http.StatusOK, `{"id":"","errors":["All included players are not subscribed"]}`, "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			o, err := NewOneSignal(OneSignalOptions{BaseURL: server.URL, AppID: "a", APIKey: "k", SubscriptionID: "s"})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			err = o.Push(context.Background(), interfaces.PushRequest{Title: "t", Message: "m"})
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error containing %q, got %v", tt.expected, err)
			}
		})
	}
}

func TestOneSignalHTTPErrorUnwraps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	o, _ := NewOneSignal(OneSignalOptions{BaseURL: server.URL, AppID: "a", APIKey: "k", SubscriptionID: "s"})
	err := o.Push(context.Background(), interfaces.PushRequest{})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", httpErr.StatusCode)
	}
}
