package sale

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(hh, mm int) time.Time { return time.Date(2025, 6, 10, hh, mm, 0, 0, time.UTC) }

func put(t *testing.T, repo *MemRepo, soldAt time.Time, total string, pm order.PaymentMethod, items ...SoldItem) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &Sale{
		ID:            uuid.NewString(),
		Code:          "VEN-" + uuid.NewString(),
		SoldAt:        soldAt,
		Total:         dec(total),
		Tax:           decimal.Zero,
		Discount:      decimal.Zero,
		CustomerID:    uuid.NewString(),
		Items:         items,
		PaymentMethod: pm,
		Channel:       DefaultChannel,
	}))
}

func line(name string, qty int, subtotal string) SoldItem {
	return SoldItem{ProductID: uuid.NewString(), Name: name, Quantity: qty, UnitPrice: dec(subtotal), Subtotal: dec(subtotal)}
}

func TestReport_ThreeSalesScenario(t *testing.T) {
	repo := NewMemRepo()
	put(t, repo, at(14, 5), "10", order.PaymentCash, line("Empanada", 2, "10"))
	put(t, repo, at(9, 15), "10", order.PaymentCash, line("Empanada", 2, "10"))
	put(t, repo, at(9, 40), "15", order.PaymentCard, line("Pizza", 1, "15"))

	r, err := NewAggregator(repo, time.UTC).Report(context.Background(), at(0, 0), at(23, 59), Options{})
	require.NoError(t, err)

	assert.True(t, r.Summary.TotalSales.Equal(dec("35")))
	assert.Equal(t, 3, r.Summary.SalesCount)

	require.Len(t, r.PaymentMethods, 2)
	assert.Equal(t, order.PaymentCard, r.PaymentMethods[0].Method)
	assert.Equal(t, 1, r.PaymentMethods[0].Count)
	assert.True(t, r.PaymentMethods[0].Total.Equal(dec("15")))
	assert.Equal(t, order.PaymentCash, r.PaymentMethods[1].Method)
	assert.Equal(t, 2, r.PaymentMethods[1].Count)
	assert.True(t, r.PaymentMethods[1].Total.Equal(dec("20")))

	require.Len(t, r.Hourly, 2)
	assert.Equal(t, 9, r.Hourly[0].Hour)
	assert.Equal(t, 2, r.Hourly[0].Count)
	assert.True(t, r.Hourly[0].Total.Equal(dec("25")))
	assert.Equal(t, 14, r.Hourly[1].Hour)
	assert.Equal(t, 1, r.Hourly[1].Count)
	assert.True(t, r.Hourly[1].Total.Equal(dec("10")))

	require.Len(t, r.TopProducts, 2)
	assert.Equal(t, "Empanada", r.TopProducts[0].Name)
	assert.Equal(t, 4, r.TopProducts[0].Quantity)
}

func TestReport_EmptyRangeIsAllZero(t *testing.T) {
	r, err := NewAggregator(NewMemRepo(), time.UTC).Report(context.Background(), at(0, 0), at(1, 0), Options{})
	require.NoError(t, err)

	assert.True(t, r.Summary.TotalSales.IsZero())
	assert.True(t, r.Summary.TotalTaxes.IsZero())
	assert.True(t, r.Summary.TotalDiscounts.IsZero())
	assert.Equal(t, 0, r.Summary.SalesCount)
	assert.NotNil(t, r.TopProducts)
	assert.NotNil(t, r.PaymentMethods)
	assert.NotNil(t, r.Hourly)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"total_sales":"0"`)
	assert.Contains(t, string(b), `"top_products":[]`)
}

func TestReport_StartAfterEnd(t *testing.T) {
	_, err := NewAggregator(NewMemRepo(), time.UTC).Report(context.Background(), at(10, 0), at(9, 0), Options{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReport_BoundsAreInclusive(t *testing.T) {
	repo := NewMemRepo()
	put(t, repo, at(9, 0), "1", order.PaymentCash)
	put(t, repo, at(10, 0), "2", order.PaymentCash)
	put(t, repo, at(10, 1), "4", order.PaymentCash)
	put(t, repo, at(8, 59), "8", order.PaymentCash)

	r, err := NewAggregator(repo, time.UTC).Report(context.Background(), at(9, 0), at(10, 0), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Summary.SalesCount)
	assert.True(t, r.Summary.TotalSales.Equal(dec("3")))
}

func TestReport_TopProductsOrderingAndLimit(t *testing.T) {
	repo := NewMemRepo()
	// 12 products; "B" and "A" tie on quantity and revenue, "C" ties on quantity only.
	put(t, repo, at(12, 0), "0", order.PaymentCard,
		line("B", 5, "10"), line("A", 5, "10"), line("C", 5, "20"))
	for i := 0; i < 9; i++ {
		put(t, repo, at(12, i+1), "0", order.PaymentCard, line(fmt.Sprintf("P%02d", i), 4-i%3, "1"))
	}

	r, err := NewAggregator(repo, time.UTC).Report(context.Background(), at(0, 0), at(23, 0), Options{})
	require.NoError(t, err)
	require.Len(t, r.TopProducts, TopProductsLimit)
	assert.Equal(t, "C", r.TopProducts[0].Name, "revenue breaks the quantity tie")
	assert.Equal(t, "A", r.TopProducts[1].Name, "name breaks the full tie")
	assert.Equal(t, "B", r.TopProducts[2].Name)
	for i := 1; i < len(r.TopProducts); i++ {
		assert.GreaterOrEqual(t, r.TopProducts[i-1].Quantity, r.TopProducts[i].Quantity)
	}
}

func TestReport_AllMethodsZeroFill(t *testing.T) {
	repo := NewMemRepo()
	put(t, repo, at(12, 0), "5", order.PaymentTransfer)

	r, err := NewAggregator(repo, time.UTC).Report(context.Background(), at(0, 0), at(23, 0), Options{AllMethods: true})
	require.NoError(t, err)
	require.Len(t, r.PaymentMethods, 3)
	assert.Equal(t, []order.PaymentMethod{order.PaymentCard, order.PaymentCash, order.PaymentTransfer},
		[]order.PaymentMethod{r.PaymentMethods[0].Method, r.PaymentMethods[1].Method, r.PaymentMethods[2].Method})
	assert.Equal(t, 0, r.PaymentMethods[0].Count)
	assert.Equal(t, 1, r.PaymentMethods[2].Count)
}

func TestReport_HoursUseAggregatorLocation(t *testing.T) {
	repo := NewMemRepo()
	put(t, repo, at(2, 30), "7", order.PaymentCash) // 02:30 UTC

	lima := time.FixedZone("UTC-5", -5*3600)
	r, err := NewAggregator(repo, lima).Report(context.Background(), at(0, 0), at(23, 0), Options{})
	require.NoError(t, err)
	require.Len(t, r.Hourly, 1)
	assert.Equal(t, 21, r.Hourly[0].Hour)
	assert.Equal(t, "UTC-5", r.Period.Timezone)
}

func TestReport_Reconciliation(t *testing.T) {
	repo := NewMemRepo()
	require.NoError(t, repo.Create(context.Background(), &Sale{
		ID: uuid.NewString(), Code: "VEN-1", SoldAt: at(12, 0),
		Total: dec("18"), Tax: dec("1.89"), Discount: dec("2"),
		Items:         []SoldItem{line("Pizza", 1, "12"), line("Cola", 2, "8")},
		PaymentMethod: order.PaymentCard,
	}))

	r, err := NewAggregator(repo, time.UTC).Report(context.Background(), at(0, 0), at(23, 0), Options{})
	require.NoError(t, err)
	assert.True(t, r.Summary.ItemsNet.Equal(dec("18")), "items_net=%s", r.Summary.ItemsNet)
	assert.True(t, r.Summary.TotalTaxes.Equal(dec("1.89")))
	assert.True(t, r.Summary.TotalDiscounts.Equal(dec("2")))
}

func TestReport_Deterministic(t *testing.T) {
	repo := NewMemRepo()
	names := []string{"Pizza", "Cola", "Tacos", "Agua", "Flan"}
	for i := 0; i < 60; i++ {
		pm := order.PaymentMethods[i%3]
		put(t, repo, at(i%24, i%60), fmt.Sprintf("%d.%02d", i, i%100), pm,
			line(names[i%5], 1+i%4, fmt.Sprintf("%d.5", i)), line(names[(i+2)%5], 1, "3"))
	}
	agg := NewAggregator(repo, time.UTC)

	first, err := agg.Report(context.Background(), at(0, 0), at(23, 59), Options{Kind: "daily"})
	require.NoError(t, err)
	second, err := agg.Report(context.Background(), at(0, 0), at(23, 59), Options{Kind: "daily"})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

// failingRepo yields one sale then a store error.
type failingRepo struct{ *MemRepo }

func (f failingRepo) Between(context.Context, time.Time, time.Time) iter.Seq2[Sale, error] {
	return func(yield func(Sale, error) bool) {
		if !yield(Sale{Total: dec("1"), PaymentMethod: order.PaymentCash}, nil) {
			return
		}
		yield(Sale{}, fmt.Errorf("connection reset"))
	}
}

func TestReport_StoreErrorGivesNoPartialReport(t *testing.T) {
	r, err := NewAggregator(failingRepo{NewMemRepo()}, time.UTC).Report(context.Background(), at(0, 0), at(1, 0), Options{})
	assert.Error(t, err)
	assert.Nil(t, r)
}
