// Package notifier posts a webhook whenever a worker's source disconnects,
// reusing the teacher's internal/client resty configuration (same timeout,
// retry, and transport tuning) repurposed from fetching snapshots to
// delivering outbound disconnect events.
package notifier

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Event describes one worker disconnect, posted as the webhook body.
type Event struct {
	Source string    `json:"source"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// Notifier delivers disconnect Events to a configured webhook URL.
type Notifier struct {
	client *resty.Client
	url    string
}

// New builds a Notifier that POSTs to url. An empty url makes Notify a
// no-op, so callers can wire a Notifier unconditionally.
func New(url string) *Notifier {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetHeader("User-Agent", "mjpeggrab/1").
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(50 * time.Millisecond).
		SetDisableWarn(true)

	transport := &http.Transport{
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ResponseHeaderTimeout: 3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	client.SetTransport(transport)

	return &Notifier{client: client, url: url}
}

// Notify posts ev to the configured webhook. It returns nil immediately if
// no webhook URL was configured.
func (n *Notifier) Notify(ev Event) error {
	if n.url == "" {
		return nil
	}
	_, err := n.client.R().SetBody(ev).Post(n.url)
	return err
}
