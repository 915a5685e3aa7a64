package sale

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
)

// TopProductsLimit caps Report.TopProducts.
const TopProductsLimit = 10

type Report struct {
	Period         ReportPeriod  `json:"period"`
	Summary        Summary       `json:"summary"`
	TopProducts    []ProductStat `json:"top_products"`
	PaymentMethods []MethodStat  `json:"payment_methods"`
	Hourly         []HourStat    `json:"hourly"`
}

type ReportPeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Kind     string    `json:"kind"`
	Timezone string    `json:"timezone"`
}

type Summary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalTaxes     decimal.Decimal `json:"total_taxes"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
	SalesCount     int             `json:"sales_count"`
	// ItemsNet is the sum of line subtotals minus discounts. Comparing it
	// with TotalSales is how callers reconcile the period.
	ItemsNet decimal.Decimal `json:"items_net"`
}

type ProductStat struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type MethodStat struct {
	Method order.PaymentMethod `json:"method"`
	Count  int                 `json:"count"`
	Total  decimal.Decimal     `json:"total"`
}

type HourStat struct {
	Hour  int             `json:"hour"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Options struct {
	// AllMethods lists every payment method, zero-filled. By default methods
	// without sales are left out.
	AllMethods bool
	// Kind labels the period (daily, weekly, ...); informational only.
	Kind string
}

// Aggregator builds sales reports. Hours are taken in one fixed location so
// the same data always lands in the same buckets.
type Aggregator struct {
	repo Repository
	loc  *time.Location
}

func NewAggregator(repo Repository, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{repo: repo, loc: loc}
}

func (a *Aggregator) Location() *time.Location { return a.loc }

// Report aggregates every sale settled in [start, end]. It either returns a
// complete report or an error, never a partial result.
func (a *Aggregator) Report(ctx context.Context, start, end time.Time, opts Options) (*Report, error) {
	if start.After(end) {
		return nil, apperr.Validation("start %s is after end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if opts.Kind == "" {
		opts.Kind = "custom"
	}

	acc := newAccumulator()
	for s, err := range a.repo.Between(ctx, start, end) {
		if err != nil {
			return nil, err
		}
		acc.add(s, a.loc)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Report{
		Period: ReportPeriod{
			Start:    start.In(a.loc),
			End:      end.In(a.loc),
			Kind:     opts.Kind,
			Timezone: a.loc.String(),
		},
		Summary:        acc.summary,
		TopProducts:    acc.topProducts(),
		PaymentMethods: acc.methods(opts.AllMethods),
		Hourly:         acc.hours(),
	}, nil
}

type accumulator struct {
	summary  Summary
	products map[string]*ProductStat
	byMethod map[order.PaymentMethod]*MethodStat
	byHour   map[int]*HourStat
}

func newAccumulator() *accumulator {
	return &accumulator{
		summary: Summary{
			TotalSales:     decimal.Zero,
			TotalTaxes:     decimal.Zero,
			TotalDiscounts: decimal.Zero,
			ItemsNet:       decimal.Zero,
		},
		products: map[string]*ProductStat{},
		byMethod: map[order.PaymentMethod]*MethodStat{},
		byHour:   map[int]*HourStat{},
	}
}

func (acc *accumulator) add(s Sale, loc *time.Location) {
	acc.summary.TotalSales = acc.summary.TotalSales.Add(s.Total)
	acc.summary.TotalTaxes = acc.summary.TotalTaxes.Add(s.Tax)
	acc.summary.TotalDiscounts = acc.summary.TotalDiscounts.Add(s.Discount)
	acc.summary.ItemsNet = acc.summary.ItemsNet.Sub(s.Discount)
	acc.summary.SalesCount++

	for _, it := range s.Items {
		p, ok := acc.products[it.Name]
		if !ok {
			p = &ProductStat{Name: it.Name, Revenue: decimal.Zero}
			acc.products[it.Name] = p
		}
		p.Quantity += it.Quantity
		p.Revenue = p.Revenue.Add(it.Subtotal)
		acc.summary.ItemsNet = acc.summary.ItemsNet.Add(it.Subtotal)
	}

	m, ok := acc.byMethod[s.PaymentMethod]
	if !ok {
		m = &MethodStat{Method: s.PaymentMethod, Total: decimal.Zero}
		acc.byMethod[s.PaymentMethod] = m
	}
	m.Count++
	m.Total = m.Total.Add(s.Total)

	hour := s.SoldAt.In(loc).Hour()
	h, ok := acc.byHour[hour]
	if !ok {
		h = &HourStat{Hour: hour, Total: decimal.Zero}
		acc.byHour[hour] = h
	}
	h.Count++
	h.Total = h.Total.Add(s.Total)
}

func (acc *accumulator) topProducts() []ProductStat {
	out := make([]ProductStat, 0, len(acc.products))
	for _, p := range acc.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	if len(out) > TopProductsLimit {
		out = out[:TopProductsLimit]
	}
	return out
}

func (acc *accumulator) methods(all bool) []MethodStat {
	out := []MethodStat{}
	for _, pm := range order.PaymentMethods {
		if m, ok := acc.byMethod[pm]; ok {
			out = append(out, *m)
		} else if all {
			out = append(out, MethodStat{Method: pm, Total: decimal.Zero})
		}
	}
	return out
}

func (acc *accumulator) hours() []HourStat {
	out := make([]HourStat, 0, len(acc.byHour))
	for h := 0; h < 24; h++ {
		if s, ok := acc.byHour[h]; ok {
			out = append(out, *s)
		}
	}
	return out
}
