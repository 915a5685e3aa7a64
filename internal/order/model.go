package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateReady      State = "ready"
	StateDelivered  State = "delivered"
	StateCancelled  State = "cancelled"
)

// transitions is the whole lifecycle graph; delivered and cancelled are terminal.
var transitions = map[State][]State{
	StatePending:    {StateInProgress, StateCancelled},
	StateInProgress: {StateReady, StateCancelled},
	StateReady:      {StateDelivered},
}

// CanTransition reports whether to is directly reachable from s.
func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s State) Terminal() bool {
	return s == StateDelivered || s == StateCancelled
}

var stateAliases = map[string]State{
	"pending":            StatePending,
	"pendiente":          StatePending,
	"in_progress":        StateInProgress,
	"en_proceso":         StateInProgress,
	"ready":              StateReady,
	"listo_para_entrega": StateReady,
	"delivered":          StateDelivered,
	"entregado":          StateDelivered,
	"cancelled":          StateCancelled,
	"canceled":           StateCancelled,
	"cancelado":          StateCancelled,
}

// ParseState accepts the canonical names and the legacy dashboard labels.
func ParseState(s string) (State, bool) {
	st, ok := stateAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// PaymentMethods lists the closed set in its canonical order.
var PaymentMethods = []PaymentMethod{PaymentCard, PaymentCash, PaymentTransfer}

var paymentAliases = map[string]PaymentMethod{
	"card":          PaymentCard,
	"tarjeta":       PaymentCard,
	"cash":          PaymentCash,
	"efectivo":      PaymentCash,
	"transfer":      PaymentTransfer,
	"transferencia": PaymentTransfer,
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	pm, ok := paymentAliases[strings.ToLower(strings.TrimSpace(s))]
	return pm, ok
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelNone  Channel = "none"
)

func ParseChannel(s string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email":
		return ChannelEmail, true
	case "sms":
		return ChannelSMS, true
	case "none", "ninguna", "":
		return ChannelNone, true
	}
	return "", false
}

// WholeCents reports whether d has at most two decimal places, the scale of
// every stored money column.
func WholeCents(d decimal.Decimal) bool { return d.Equal(d.Truncate(2)) }

type NotificationInfo struct {
	Channel Channel `json:"channel"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone,omitempty"`
}

// Contact returns the address the channel delivers to.
func (n NotificationInfo) Contact() string {
	switch n.Channel {
	case ChannelEmail:
		return n.Email
	case ChannelSMS:
		return n.Phone
	}
	return ""
}

type Order struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	RestaurantID  string           `json:"restaurant_id"`
	CustomerID    string           `json:"customer_id"`
	Items         []Item           `json:"items"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Notification  NotificationInfo `json:"notification"`
	State         State            `json:"state"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	ReadyAt       *time.Time       `json:"ready_at,omitempty"`
	Notified      bool             `json:"notified"`
	NotifiedAt    *time.Time       `json:"notified_at,omitempty"`
}

type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Filter narrows List; empty fields match everything.
type Filter struct {
	RestaurantID string
	CustomerID   string
	State        State
	Limit        int
	Offset       int
}

func (f Filter) normalized() Filter {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (o *Order) clone() *Order {
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	if o.ReadyAt != nil {
		t := *o.ReadyAt
		cp.ReadyAt = &t
	}
	if o.NotifiedAt != nil {
		t := *o.NotifiedAt
		cp.NotifiedAt = &t
	}
	return &cp
}
