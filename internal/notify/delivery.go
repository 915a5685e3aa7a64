package notify

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/MikeMC777/pedidos-restaurante/internal/order"
)

// Notification is what the external channel receives for one ready order.
type Notification struct {
	OrderID   string        `json:"order_id"`
	OrderCode string        `json:"order_code"`
	Channel   order.Channel `json:"channel"`
	Contact   string        `json:"contact"`
	Message   string        `json:"message"`
}

// Deliverer hands a notification to the outside world. It must honour ctx
// cancellation; the tracker bounds every call with a timeout.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

func newNotification(o order.Order) Notification {
	return Notification{
		OrderID:   o.ID,
		OrderCode: o.Code,
		Channel:   o.Notification.Channel,
		Contact:   o.Notification.Contact(),
		Message:   fmt.Sprintf("Your order %s is ready for pickup/delivery. Total: %s", o.Code, o.Total.StringFixed(2)),
	}
}

// WebhookDeliverer posts notifications as JSON to a delivery gateway
// (email/SMS provider bridge).
type WebhookDeliverer struct {
	HTTP   *http.Client
	URL    string
	Secret []byte
}

func NewWebhookDeliverer(url, secret string) *WebhookDeliverer {
	w := &WebhookDeliverer{
		HTTP: &http.Client{Timeout: 5 * time.Second},
		URL:  url,
	}
	if secret != "" {
		w.Secret = []byte(secret)
	}
	return w
}

// Sign returns the hex keyed BLAKE2b-256 MAC of body sent in X-Signature.
// Secrets longer than the 64-byte BLAKE2b key limit are first hashed down
// to 32 bytes.
func Sign(secret, body []byte) (string, error) {
	if len(secret) > blake2b.Size {
		k := blake2b.Sum256(secret)
		secret = k[:]
	}
	h, err := blake2b.New256(secret)
	if err != nil {
		return "", err
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (w *WebhookDeliverer) Deliver(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", n.OrderID)
	if len(w.Secret) > 0 {
		sig, err := Sign(w.Secret, body)
		if err != nil {
			return err
		}
		req.Header.Set("X-Signature", sig)
	}

	res, err := w.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("gateway rejected notification: %s", res.Status)
	}
	return nil
}

// LogDeliverer only writes the notification to the log. It is used when no
// gateway is configured.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Printf("[notify] %s to %s via %s: %s", n.OrderCode, n.Contact, n.Channel, n.Message)
	return nil
}

// NewDeliverer picks the webhook gateway when a URL is configured and the
// log otherwise.
func NewDeliverer(url, secret string) Deliverer {
	if url == "" {
		log.Printf("[notify] no gateway configured, notifications go to the log")
		return LogDeliverer{}
	}
	log.Printf("[notify] delivering through %s signed=%t", url, secret != "")
	return NewWebhookDeliverer(url, secret)
}
