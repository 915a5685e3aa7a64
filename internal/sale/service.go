package sale

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
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
)

const (
	DefaultChannel   = "online_store"
	OrderSaleChannel = "mobile_app"
	recordAttempts   = 3
)

// Service records settled sales. Sales are stored as given apart from basic
// sanity checks; reconciliation is reported, not enforced.
type Service struct {
	repo    Repository
	codes   *idgen.Generator
	taxRate decimal.Decimal
	now     func() time.Time
}

func NewService(repo Repository, taxRate decimal.Decimal) *Service {
	return &Service{repo: repo, codes: idgen.New("VEN"), taxRate: taxRate, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Record(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	sl, err := buildSale(req)
	if err != nil {
		return nil, err
	}
	sl.ID = uuid.NewString()
	sl.SoldAt = s.now().UTC()

	for attempt := 1; ; attempt++ {
		sl.Code = s.codes.Next()
		err = s.repo.Create(ctx, sl)
		if !errors.Is(err, ErrDuplicateCode) || attempt == recordAttempts {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[sale] recorded %s total=%s method=%s", sl.Code, sl.Total, sl.PaymentMethod)
	return sl, nil
}

func buildSale(req CreateSaleRequest) (*Sale, error) {
	if _, err := uuid.Parse(req.CustomerID); err != nil {
		return nil, apperr.Validation("customer_id %q is not a valid identifier", req.CustomerID)
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("items must not be empty")
	}
	pm, ok := order.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, apperr.Validation("payment_method %q must be one of card, cash, transfer", req.PaymentMethod)
	}
	sl := &Sale{
		Total:         req.Total,
		Tax:           valueOrZero(req.Tax),
		Discount:      valueOrZero(req.Discount),
		CustomerID:    req.CustomerID,
		PaymentMethod: pm,
		Channel:       strings.TrimSpace(req.Channel),
	}
	if sl.Channel == "" {
		sl.Channel = DefaultChannel
	}
	if sl.Total.IsNegative() || sl.Tax.IsNegative() || sl.Discount.IsNegative() {
		return nil, apperr.Validation("total, tax and discount must not be negative")
	}
	if !order.WholeCents(sl.Total) || !order.WholeCents(sl.Tax) || !order.WholeCents(sl.Discount) {
		return nil, apperr.Validation("total, tax and discount must have at most two decimals")
	}
	if req.OrderID != "" {
		if _, err := uuid.Parse(req.OrderID); err != nil {
			return nil, apperr.Validation("order_id %q is not a valid identifier", req.OrderID)
		}
		id := req.OrderID
		sl.OrderID = &id
	}
	for i, it := range req.Items {
		if it.Quantity < 1 {
			return nil, apperr.Validation("items[%d].quantity must be at least 1", i)
		}
		if it.UnitPrice.IsNegative() || it.Subtotal.IsNegative() {
			return nil, apperr.Validation("items[%d] amounts must not be negative", i)
		}
		if !order.WholeCents(it.UnitPrice) || !order.WholeCents(it.Subtotal) {
			return nil, apperr.Validation("items[%d] amounts must have at most two decimals", i)
		}
		sl.Items = append(sl.Items, SoldItem{
			ProductID: it.ProductID,
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return sl, nil
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// FromOrder settles a delivered order into a sale. Tax is the configured
// rate over the order total, rounded to cents.
func (s *Service) FromOrder(ctx context.Context, o *order.Order) (*Sale, error) {
	if o.State != order.StateDelivered {
		return nil, apperr.Validation("order %s is %s, only delivered orders can be settled", o.Code, o.State)
	}
	tax := o.Total.Mul(s.taxRate).Round(2)
	req := CreateSaleRequest{
		Total:         o.Total,
		Tax:           &tax,
		CustomerID:    o.CustomerID,
		PaymentMethod: string(o.PaymentMethod),
		OrderID:       o.ID,
		Channel:       OrderSaleChannel,
	}
	for _, it := range o.Items {
		req.Items = append(req.Items, CreateSaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return s.Record(ctx, req)
}

func (s *Service) Get(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Sale, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, apperr.Validation("from must not be after to")
	}
	return s.repo.List(ctx, f)
}
