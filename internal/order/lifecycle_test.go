package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func pizzaDraft() Draft {
	return Draft{
		RestaurantID: uuid.NewString(),
		CustomerID:   uuid.NewString(),
		Items: []DraftItem{
			{ProductID: uuid.NewString(), Name: "Pizza", Quantity: 2, UnitPrice: dec("12.50")},
			{ProductID: uuid.NewString(), Name: "Cola", Quantity: 2, UnitPrice: dec("2.50")},
		},
		PaymentMethod: "card",
		Notification:  CreateNotification{Channel: "email", Email: "ana@example.com"},
	}
}

func TestCreate_ComputesTotalAndDefaults(t *testing.T) {
	m := NewManager(NewMemRepo())

	o, err := m.Create(context.Background(), pizzaDraft())
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(dec("30.00")), "total=%s", o.Total)
	assert.True(t, o.Items[0].Subtotal.Equal(dec("25")))
	assert.True(t, o.Items[1].Subtotal.Equal(dec("5")))
	assert.Equal(t, StatePending, o.State)
	assert.False(t, o.Notified)
	assert.Nil(t, o.ReadyAt)
	assert.NotEmpty(t, o.ID)
	assert.Regexp(t, `^PED-\d+$`, o.Code)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
}

func TestCreate_AcceptsDeclaredTotalWithinTolerance(t *testing.T) {
	m := NewManager(NewMemRepo())
	d := pizzaDraft()
	d.Total = decPtr("30.01")
	d.Items[0].Subtotal = decPtr("25.00")

	o, err := m.Create(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(dec("30")), "stored total is the computed one")
}

func TestCreate_ValidationErrors(t *testing.T) {
	cases := map[string]func(d *Draft){
		"empty items":        func(d *Draft) { d.Items = nil },
		"negative quantity":  func(d *Draft) { d.Items[0].Quantity = -1 },
		"zero quantity":      func(d *Draft) { d.Items[0].Quantity = 0 },
		"negative price":     func(d *Draft) { d.Items[1].UnitPrice = dec("-1") },
		"total mismatch":     func(d *Draft) { d.Total = decPtr("29.00") },
		"subtotal mismatch":  func(d *Draft) { d.Items[0].Subtotal = decPtr("20") },
		"bad payment method": func(d *Draft) { d.PaymentMethod = "bitcoin" },
		"bad restaurant":     func(d *Draft) { d.RestaurantID = "nope" },
		"bad customer":       func(d *Draft) { d.CustomerID = "" },
		"bad product":        func(d *Draft) { d.Items[0].ProductID = "x" },
		"email missing":      func(d *Draft) { d.Notification.Email = "" },
		"sms without phone":  func(d *Draft) { d.Notification = CreateNotification{Channel: "sms"} },
		"unknown channel":    func(d *Draft) { d.Notification.Channel = "pigeon" },
		"sub-cent price":     func(d *Draft) { d.Items[0].UnitPrice = dec("0.125") },
		"sub-cent subtotal":  func(d *Draft) { d.Items[1].Subtotal = decPtr("5.001") },
		"sub-cent total":     func(d *Draft) { d.Total = decPtr("30.004") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := pizzaDraft()
			mutate(&d)
			_, err := NewManager(NewMemRepo()).Create(context.Background(), d)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestWholeCents(t *testing.T) {
	for v, want := range map[string]bool{"0": true, "12.5": true, "12.50": true, "0.125": false, "3.1500": true, "-0.001": false} {
		assert.Equal(t, want, WholeCents(dec(v)), v)
	}
}

func TestCreate_SubCentOrderNeverStored(t *testing.T) {
	repo := NewMemRepo()
	d := pizzaDraft()
	d.Items = []DraftItem{{ProductID: uuid.NewString(), Name: "Chicle", Quantity: 1, UnitPrice: dec("0.125")}}

	_, err := NewManager(repo).Create(context.Background(), d)
	require.ErrorIs(t, err, apperr.ErrValidation)
	all, err := repo.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_LegacyLabels(t *testing.T) {
	d := pizzaDraft()
	d.PaymentMethod = "efectivo"
	d.Notification = CreateNotification{Channel: "ninguna"}

	o, err := NewManager(NewMemRepo()).Create(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, o.PaymentMethod)
	assert.Equal(t, ChannelNone, o.Notification.Channel)
}

func TestCreate_TotalPropertyOverManyDrafts(t *testing.T) {
	m := NewManager(NewMemRepo())
	for n := 1; n <= 20; n++ {
		d := pizzaDraft()
		d.Items = nil
		want := decimal.Zero
		for i := 1; i <= n; i++ {
			price := decimal.New(int64(i*137%1000), -2)
			d.Items = append(d.Items, DraftItem{ProductID: uuid.NewString(), Name: "p", Quantity: i, UnitPrice: price})
			want = want.Add(price.Mul(decimal.NewFromInt(int64(i))))
		}
		o, err := m.Create(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, withinTolerance(o.Total, want), "n=%d total=%s want=%s", n, o.Total, want)
	}
}

func TestTransition_Graph(t *testing.T) {
	all := []State{StatePending, StateInProgress, StateReady, StateDelivered, StateCancelled}
	allowed := map[[2]State]bool{
		{StatePending, StateInProgress}:   true,
		{StateInProgress, StateReady}:     true,
		{StateReady, StateDelivered}:      true,
		{StatePending, StateCancelled}:    true,
		{StateInProgress, StateCancelled}: true,
	}
	// paths from pending that reach each starting state
	reach := map[State][]State{
		StatePending:    nil,
		StateInProgress: {StateInProgress},
		StateReady:      {StateInProgress, StateReady},
		StateDelivered:  {StateInProgress, StateReady, StateDelivered},
		StateCancelled:  {StateCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			ctx := context.Background()
			m := NewManager(NewMemRepo())
			o, err := m.Create(ctx, pizzaDraft())
			require.NoError(t, err)
			for _, step := range reach[from] {
				_, err := m.Transition(ctx, o.ID, step)
				require.NoError(t, err)
			}

			got, err := m.Transition(ctx, o.ID, to)
			if allowed[[2]State{from, to}] {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got.State)
			} else {
				assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestTransition_ReadyStampsReadyAt(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(NewMemRepo()).WithClock(func() time.Time { return clock })

	o, err := m.Create(ctx, pizzaDraft())
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	o, err = m.Transition(ctx, o.ID, StateInProgress)
	require.NoError(t, err)
	assert.Nil(t, o.ReadyAt)
	assert.Equal(t, clock, o.UpdatedAt)

	clock = clock.Add(10 * time.Minute)
	o, err = m.Transition(ctx, o.ID, StateReady)
	require.NoError(t, err)
	require.NotNil(t, o.ReadyAt)
	assert.Equal(t, clock, *o.ReadyAt)
	assert.True(t, o.CreatedAt.Before(o.UpdatedAt))
}

func TestTransition_PizzaScenarioPendingToReadyRejected(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemRepo())
	o, err := m.Create(ctx, pizzaDraft())
	require.NoError(t, err)
	require.True(t, o.Total.Equal(dec("30.00")))

	_, err = m.Transition(ctx, o.ID, StateReady)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	cur, err := m.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePending, cur.State)
}

func TestTransition_NotFound(t *testing.T) {
	_, err := NewManager(NewMemRepo()).Transition(context.Background(), uuid.NewString(), StateInProgress)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// gatedRepo holds every GetByID until n readers arrived, so concurrent
// transitions all observe the same starting state.
type gatedRepo struct {
	*MemRepo
	gate sync.WaitGroup
}

func (g *gatedRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := g.MemRepo.GetByID(ctx, id)
	g.gate.Done()
	g.gate.Wait()
	return o, err
}

func TestTransition_ConcurrentSameStartExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	repo := &gatedRepo{MemRepo: NewMemRepo()}
	m := NewManager(repo)
	o, err := NewManager(repo.MemRepo).Create(ctx, pizzaDraft())
	require.NoError(t, err)

	repo.gate.Add(2)
	targets := []State{StateInProgress, StateCancelled}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = m.Transition(ctx, o.ID, target)
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperr.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}

func TestList_FiltersAndOrdering(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewManager(NewMemRepo()).WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	rest := uuid.NewString()

	var ids []string
	for i := 0; i < 3; i++ {
		d := pizzaDraft()
		d.RestaurantID = rest
		o, err := m.Create(ctx, d)
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := m.Create(ctx, pizzaDraft())
	require.NoError(t, err)
	_, err = m.Transition(ctx, ids[0], StateCancelled)
	require.NoError(t, err)

	got, err := m.List(ctx, Filter{RestaurantID: rest})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[2], got[0].ID, "newest first")

	got, err = m.List(ctx, Filter{RestaurantID: rest, State: StateCancelled})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[0], got[0].ID)

	got, err = m.List(ctx, Filter{RestaurantID: rest, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)
}

func TestParseState_Aliases(t *testing.T) {
	st, ok := ParseState("listo_para_entrega")
	assert.True(t, ok)
	assert.Equal(t, StateReady, st)

	st, ok = ParseState(" Canceled ")
	assert.True(t, ok)
	assert.Equal(t, StateCancelled, st)

	_, ok = ParseState("wtf")
	assert.False(t, ok)
}
