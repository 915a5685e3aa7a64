package sale

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
	ErrDuplicateCode = errors.New("sale code already exists")
)

type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, f Filter) ([]Sale, error)
	// Between yields every sale with start <= SoldAt <= end.
	Between(ctx context.Context, start, end time.Time) iter.Seq2[Sale, error]
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const saleColumns = `id::text, code, sold_at, total::text, tax::text, discount::text,
    customer_id::text, items, payment_method, order_id::text, channel`

type scanner interface {
	Scan(dest ...any) error
}

func scanSale(row scanner) (*Sale, error) {
	var (
		s                    Sale
		items                []byte
		total, tax, discount string
	)
	if err := row.Scan(&s.ID, &s.Code, &s.SoldAt, &total, &tax, &discount,
		&s.CustomerID, &items, &s.PaymentMethod, &s.OrderID, &s.Channel); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, fmt.Errorf("decode items of sale %s: %w", s.ID, err)
	}
	var err error
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{{&s.Total, total}, {&s.Tax, tax}, {&s.Discount, discount}} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return nil, fmt.Errorf("decode amount of sale %s: %w", s.ID, err)
		}
	}
	return &s, nil
}

func (r *PGRepo) Create(ctx context.Context, s *Sale) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := json.Marshal(s.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
    INSERT INTO sales (id, code, sold_at, total, tax, discount, customer_id, items, payment_method, order_id, channel)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
  `, s.ID, s.Code, s.SoldAt, s.Total.String(), s.Tax.String(), s.Discount.String(),
		s.CustomerID, items, string(s.PaymentMethod), s.OrderID, s.Channel)
	if store.IsUniqueViolation(err, "sales_code_key") {
		return ErrDuplicateCode
	}
	if store.IsUniqueViolation(err, "sales_order_id_key") {
		return apperr.Validation("order %s already has a sale", *s.OrderID)
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("sale", id)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("sale", id)
	}
	return s, err
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	f = f.normalized()
	rows, err := r.db.Query(ctx, `
    SELECT `+saleColumns+`
    FROM sales
    WHERE ($1::timestamptz IS NULL OR sold_at >= $1)
      AND ($2::timestamptz IS NULL OR sold_at <= $2)
      AND ($3 = '' OR customer_id::text = $3)
    ORDER BY sold_at DESC, id
    LIMIT $4 OFFSET $5
  `, nilIfZero(f.From), nilIfZero(f.To), f.CustomerID, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *PGRepo) Between(ctx context.Context, start, end time.Time) iter.Seq2[Sale, error] {
	return func(yield func(Sale, error) bool) {
		rows, err := r.db.Query(ctx, `
      SELECT `+saleColumns+`
      FROM sales
      WHERE sold_at >= $1 AND sold_at <= $2
      ORDER BY sold_at, id
    `, start, end)
		if err != nil {
			yield(Sale{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanSale(rows)
			if err != nil {
				yield(Sale{}, err)
				return
			}
			if !yield(*s, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Sale{}, err)
		}
	}
}

func nilIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
