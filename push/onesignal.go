package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/giygas/medreminder/interfaces"
)

// DefaultOneSignalBaseURL is the OneSignal REST API root.
const DefaultOneSignalBaseURL = "https://onesignal.com/api/v1"

// OneSignalOptions configures the OneSignal provider.
type OneSignalOptions struct {
	BaseURL        string
	AppID          string
	APIKey         string
	SubscriptionID string // the patient's own device subscription
	Timeout        time.Duration
}

// OneSignal sends web push notifications through the OneSignal REST API.
type OneSignal struct {
	client         *jsonClient
	appID          string
	apiKey         string
	subscriptionID string
}

var _ interfaces.Pusher = (*OneSignal)(nil)

// NewOneSignal validates opts and creates the provider.
func NewOneSignal(opts OneSignalOptions) (*OneSignal, error) {
	if opts.AppID == "" || opts.APIKey == "" || opts.SubscriptionID == "" {
		return nil, fmt.Errorf("onesignal: %w", ErrNotConfigured)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOneSignalBaseURL
	}

	client, err := newJSONClient(opts.BaseURL, opts.Timeout)
	if err != nil {
		return nil, fmt.Errorf("onesignal: %w", err)
	}

	return &OneSignal{
		client:         client,
		appID:          opts.AppID,
		apiKey:         opts.APIKey,
		subscriptionID: opts.SubscriptionID,
	}, nil
}

func (o *OneSignal) Name() string { return "onesignal" }

type oneSignalRequest struct {
	AppID                  string            `json:"app_id"`
	IncludeSubscriptionIDs []string          `json:"include_subscription_ids"`
	Headings               map[string]string `json:"headings"`
	Contents               map[string]string `json:"contents"`
	URL                    string            `json:"url,omitempty"`
	ChromeWebIcon          string            `json:"chrome_web_icon,omitempty"`
}

type oneSignalResponse struct {
	ID     string          `json:"id"`
	Errors json.RawMessage `json:"errors"`
}

// Push creates one notification for the configured subscription.
func (o *OneSignal) Push(ctx context.Context, req interfaces.PushRequest) error {
	body := oneSignalRequest{
		AppID:                  o.appID,
		IncludeSubscriptionIDs: []string{o.subscriptionID},
		Headings:               map[string]string{"en": req.Title},
		Contents:               map[string]string{"en": req.Message},
		URL:                    req.URL,
		ChromeWebIcon:          req.Icon,
	}
	headers := map[string]string{"Authorization": "Basic " + o.apiKey}

	var resp oneSignalResponse
	if err := o.client.postJSON(ctx, "/notifications", headers, body, &resp); err != nil {
		return fmt.Errorf("onesignal: %w", err)
	}

	// OneSignal answers 200 with an errors field when no device was reached
	if len(resp.Errors) > 0 && !bytes.Equal(resp.Errors, []byte("null")) {
		return fmt.Errorf("onesignal: notification rejected: %s", resp.Errors)
	}
	return nil
}
