package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
	"github.com/MikeMC777/pedidos-restaurante/internal/store"
)

var (
	// ErrDuplicateCode is returned by Create when the human code is taken.
	ErrDuplicateCode = errors.New("order code already exists")
)

// pendingBatch bounds how many pending orders one page of PendingNotification reads.
const pendingBatch = 50

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByCode(ctx context.Context, code string) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	// UpdateState writes to only if the stored state is still from.
	// readyAt, when non-nil, is stamped in the same write.
	UpdateState(ctx context.Context, id string, from, to State, at time.Time, readyAt *time.Time) (*Order, error)
	// MarkNotified flips notified false->true only once. A repeated call returns
	// the stored order together with apperr.ErrAlreadyNotified.
	MarkNotified(ctx context.Context, id string, at time.Time) (*Order, error)
	// PendingNotification yields ready, unnotified orders, oldest ready first.
	PendingNotification(ctx context.Context) iter.Seq2[Order, error]
	Ping(ctx context.Context) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `id::text, code, restaurant_id::text, customer_id::text, items, total::text,
    payment_method, notify_channel, notify_email, notify_phone, state,
    created_at, updated_at, ready_at, notified, notified_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*Order, error) {
	var (
		o     Order
		items []byte
		total string
	)
	if err := row.Scan(&o.ID, &o.Code, &o.RestaurantID, &o.CustomerID, &items, &total,
		&o.PaymentMethod, &o.Notification.Channel, &o.Notification.Email, &o.Notification.Phone, &o.State,
		&o.CreatedAt, &o.UpdatedAt, &o.ReadyAt, &o.Notified, &o.NotifiedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("decode total of order %s: %w", o.ID, err)
	}
	o.Total = d
	return &o, nil
}

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
    INSERT INTO orders (id, code, restaurant_id, customer_id, items, total, payment_method,
                        notify_channel, notify_email, notify_phone, state, created_at, updated_at, notified)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12,false)
  `, o.ID, o.Code, o.RestaurantID, o.CustomerID, items, o.Total.String(), string(o.PaymentMethod),
		string(o.Notification.Channel), o.Notification.Email, o.Notification.Phone, string(o.State), o.CreatedAt)
	if store.IsUniqueViolation(err, "orders_code_key") {
		return ErrDuplicateCode
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("order", id)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order", id)
	}
	return o, err
}

func (r *PGRepo) GetByCode(ctx context.Context, code string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE code=$1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order", code)
	}
	return o, err
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	f = f.normalized()
	rows, err := r.db.Query(ctx, `
    SELECT `+orderColumns+`
    FROM orders
    WHERE ($1 = '' OR restaurant_id::text = $1)
      AND ($2 = '' OR customer_id::text = $2)
      AND ($3 = '' OR state = $3)
    ORDER BY created_at DESC, id
    LIMIT $4 OFFSET $5
  `, f.RestaurantID, f.CustomerID, string(f.State), f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateState(ctx context.Context, id string, from, to State, at time.Time, readyAt *time.Time) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("order", id)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
    UPDATE orders
    SET state = $3, updated_at = $4, ready_at = COALESCE($5::timestamptz, ready_at)
    WHERE id = $1 AND state = $2
    RETURNING `+orderColumns, id, string(from), string(to), at, readyAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missingOrConflict(ctx, id)
	}
	return o, err
}

func (r *PGRepo) missingOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("order", id)
	}
	return apperr.Conflict(id)
}

func (r *PGRepo) MarkNotified(ctx context.Context, id string, at time.Time) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("order", id)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
    UPDATE orders
    SET notified = true, notified_at = $2
    WHERE id = $1 AND notified = false AND ready_at IS NOT NULL
    RETURNING `+orderColumns, id, at))
	if !errors.Is(err, pgx.ErrNoRows) {
		return o, err
	}

	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return notifyRejection(cur)
}

// notifyRejection explains why a conditional notified write matched nothing.
func notifyRejection(cur *Order) (*Order, error) {
	if cur.Notified {
		return cur, apperr.AlreadyNotified(cur.ID)
	}
	return nil, apperr.Validation("order %s has not reached %s", cur.ID, StateReady)
}

func (r *PGRepo) PendingNotification(ctx context.Context) iter.Seq2[Order, error] {
	return func(yield func(Order, error) bool) {
		var (
			afterReady time.Time
			afterID    string
			first      = true
		)
		for {
			page, err := r.pendingPage(ctx, first, afterReady, afterID)
			if err != nil {
				yield(Order{}, err)
				return
			}
			for _, o := range page {
				if !yield(o, nil) {
					return
				}
			}
			if len(page) < pendingBatch {
				return
			}
			last := page[len(page)-1]
			afterReady, afterID, first = *last.ReadyAt, last.ID, false
		}
	}
}

// pendingPage reads one keyset page so no connection is held while the
// caller works on the yielded orders.
func (r *PGRepo) pendingPage(ctx context.Context, first bool, afterReady time.Time, afterID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT `+orderColumns+`
    FROM orders
    WHERE state = 'ready' AND notified = false
      AND ($1 OR (ready_at, id) > ($2::timestamptz, $3::uuid))
    ORDER BY ready_at, id
    LIMIT $4
  `, first, afterReady, nilIfEmpty(afterID), pendingBatch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PGRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.db.Ping(ctx)
}
