package order

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
	"github.com/MikeMC777/pedidos-restaurante/internal/idgen"
)

// Tolerance is the largest accepted gap between a supplied amount and the
// amount computed from the line items.
var Tolerance = decimal.RequireFromString("0.01")

const createAttempts = 3

type DraftItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  *decimal.Decimal
}

// Draft is an order as submitted, before validation.
type Draft struct {
	RestaurantID  string
	CustomerID    string
	Items         []DraftItem
	Total         *decimal.Decimal
	PaymentMethod string
	Notification  CreateNotification
}

// Manager owns every state change of an order except the notified flag.
type Manager struct {
	repo  Repository
	codes *idgen.Generator
	now   func() time.Time
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo, codes: idgen.New("PED"), now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Create(ctx context.Context, d Draft) (*Order, error) {
	o, err := buildOrder(d)
	if err != nil {
		return nil, err
	}
	now := m.now().UTC()
	o.ID = uuid.NewString()
	o.State = StatePending
	o.CreatedAt = now
	o.UpdatedAt = now

	for attempt := 1; ; attempt++ {
		o.Code = m.codes.Next()
		err = m.repo.Create(ctx, o)
		if !errors.Is(err, ErrDuplicateCode) || attempt == createAttempts {
			break
		}
		log.Printf("[order] code %s taken, retrying", o.Code)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func buildOrder(d Draft) (*Order, error) {
	if !validRef(d.RestaurantID) {
		return nil, apperr.Validation("restaurant_id %q is not a valid identifier", d.RestaurantID)
	}
	if !validRef(d.CustomerID) {
		return nil, apperr.Validation("customer_id %q is not a valid identifier", d.CustomerID)
	}
	if len(d.Items) == 0 {
		return nil, apperr.Validation("items must not be empty")
	}
	pm, ok := ParsePaymentMethod(d.PaymentMethod)
	if !ok {
		return nil, apperr.Validation("payment_method %q must be one of card, cash, transfer", d.PaymentMethod)
	}
	notif, err := buildNotification(d.Notification)
	if err != nil {
		return nil, err
	}

	o := &Order{
		RestaurantID:  d.RestaurantID,
		CustomerID:    d.CustomerID,
		PaymentMethod: pm,
		Notification:  notif,
		Items:         make([]Item, 0, len(d.Items)),
	}
	total := decimal.Zero
	for i, it := range d.Items {
		if !validRef(it.ProductID) {
			return nil, apperr.Validation("items[%d].product_id %q is not a valid identifier", i, it.ProductID)
		}
		if it.Quantity < 1 {
			return nil, apperr.Validation("items[%d].quantity must be at least 1", i)
		}
		if it.UnitPrice.IsNegative() {
			return nil, apperr.Validation("items[%d].unit_price must not be negative", i)
		}
		if !WholeCents(it.UnitPrice) || (it.Subtotal != nil && !WholeCents(*it.Subtotal)) {
			return nil, apperr.Validation("items[%d] amounts must have at most two decimals", i)
		}
		sub := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		if it.Subtotal != nil && !withinTolerance(*it.Subtotal, sub) {
			return nil, apperr.Validation("items[%d].subtotal %s does not match %d x %s", i, it.Subtotal, it.Quantity, it.UnitPrice)
		}
		o.Items = append(o.Items, Item{
			ProductID: it.ProductID,
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  sub,
		})
		total = total.Add(sub)
	}
	if d.Total != nil && !WholeCents(*d.Total) {
		return nil, apperr.Validation("total %s must have at most two decimals", d.Total)
	}
	if d.Total != nil && !withinTolerance(*d.Total, total) {
		return nil, apperr.Validation("total %s does not match item sum %s", d.Total, total)
	}
	o.Total = total
	return o, nil
}

func buildNotification(n CreateNotification) (NotificationInfo, error) {
	ch, ok := ParseChannel(n.Channel)
	if !ok {
		return NotificationInfo{}, apperr.Validation("notification.channel %q must be one of email, sms, none", n.Channel)
	}
	info := NotificationInfo{Channel: ch, Email: strings.TrimSpace(n.Email), Phone: strings.TrimSpace(n.Phone)}
	if ch == ChannelEmail && info.Email == "" {
		return NotificationInfo{}, apperr.Validation("notification.email is required for channel email")
	}
	if ch == ChannelSMS && info.Phone == "" {
		return NotificationInfo{}, apperr.Validation("notification.phone is required for channel sms")
	}
	return info, nil
}

func validRef(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func withinTolerance(got, want decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(Tolerance)
}

// Transition moves an order one edge along the lifecycle graph. Entering
// ready stamps ReadyAt, which is what exposes the order to the notification
// tracker. A concurrent writer that got there first yields apperr.ErrConflict.
func (m *Manager) Transition(ctx context.Context, id string, target State) (*Order, error) {
	cur, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cur.State.CanTransition(target) {
		return nil, apperr.InvalidTransition(string(cur.State), string(target))
	}

	now := m.now().UTC()
	var readyAt *time.Time
	if target == StateReady {
		readyAt = &now
	}
	o, err := m.repo.UpdateState(ctx, id, cur.State, target, now, readyAt)
	if err != nil {
		return nil, err
	}
	log.Printf("[order] %s %s -> %s", o.Code, cur.State, target)
	return o, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Order, error) {
	return m.repo.GetByID(ctx, id)
}

func (m *Manager) GetByCode(ctx context.Context, code string) (*Order, error) {
	return m.repo.GetByCode(ctx, code)
}

func (m *Manager) List(ctx context.Context, f Filter) ([]Order, error) {
	return m.repo.List(ctx, f)
}
