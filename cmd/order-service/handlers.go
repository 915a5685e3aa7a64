package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
	"github.com/MikeMC777/pedidos-restaurante/internal/httpx"
	"github.com/MikeMC777/pedidos-restaurante/internal/notify"
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
	"github.com/MikeMC777/pedidos-restaurante/internal/sale"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// deps is everything the router needs; main builds it from config.
type deps struct {
	orders  *order.Manager
	tracker *notify.Tracker
	sales   *sale.Service
	reports *sale.Aggregator
	store   pinger
	now     func() time.Time
}

// MarkNotifiedRequest identifies the order by id or by human code.
// swagger:model MarkNotifiedRequest
type MarkNotifiedRequest struct {
	OrderID   string `json:"order_id,omitempty"   example:"0f8c2a52-8a7e-4c55-9a57-0d7b1d5a6a10"`
	OrderCode string `json:"order_code,omitempty" example:"PED-1718035200000"`
}

// MarkNotifiedResponse carries the stored order. AlreadyNotified is true when
// an earlier call had already recorded the hand-off.
// swagger:model MarkNotifiedResponse
type MarkNotifiedResponse struct {
	Order           *order.Order `json:"order"`
	AlreadyNotified bool         `json:"already_notified"`
}

// PendingNotificationsResponse is one complete poll; it is not paginated.
// swagger:model PendingNotificationsResponse
type PendingNotificationsResponse struct {
	Count int           `json:"count"`
	Items []order.Order `json:"items"`
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		httpx.BadRequest(c, key+" must be an integer")
		return 0, false
	}
	return n, true
}

// createOrderHandler godoc
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.CreateOrderRequest  true  "order"
// @Success      201   {object}  order.Order
// @Failure      400   {object}  httpx.HTTPError
// @Router       /orders [post]
func createOrderHandler(mgr *order.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json: "+err.Error())
			return
		}
		o, err := mgr.Create(c.Request.Context(), req.Draft())
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// listOrdersHandler godoc
// @Summary      List orders, newest first
// @Tags         orders
// @Produce      json
// @Param        restaurant_id  query  string  false  "restaurant"
// @Param        customer_id    query  string  false  "customer"
// @Param        state          query  string  false  "state"
// @Param        limit          query  int     false  "limit (default 20, max 100)"
// @Param        offset         query  int     false  "offset"
// @Success      200  {object}  httpx.Page[order.Order]
// @Failure      400  {object}  httpx.HTTPError
// @Router       /orders [get]
func listOrdersHandler(mgr *order.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryInt(c, "limit", 20)
		if !ok {
			return
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return
		}
		f := order.Filter{
			RestaurantID: c.Query("restaurant_id"),
			CustomerID:   c.Query("customer_id"),
			Limit:        limit,
			Offset:       offset,
		}
		if s := c.Query("state"); s != "" {
			st, ok := order.ParseState(s)
			if !ok {
				httpx.BadRequest(c, "unknown state "+strconv.Quote(s))
				return
			}
			f.State = st
		}
		items, err := mgr.List(c.Request.Context(), f)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, httpx.Page[order.Order]{Limit: limit, Offset: offset, Items: items})
	}
}

// getOrderHandler godoc
// @Summary      Get order by id
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID (uuid)"
// @Success      200  {object}  order.Order
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id} [get]
func getOrderHandler(mgr *order.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := mgr.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// getOrderByCodeHandler godoc
// @Summary      Get order by human code
// @Tags         orders
// @Produce      json
// @Param        code  path      string  true  "Order code (PED-...)"
// @Success      200   {object}  order.Order
// @Failure      404   {object}  httpx.HTTPError
// @Router       /orders/code/{code} [get]
func getOrderByCodeHandler(mgr *order.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := mgr.GetByCode(c.Request.Context(), c.Param("code"))
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// transitionOrderHandler godoc
// @Summary      Move an order to another state
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Order ID (uuid)"
// @Param        body  body      order.TransitionRequest  true  "target state"
// @Success      200   {object}  order.Order
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Failure      409   {object}  httpx.HTTPError
// @Failure      422   {object}  httpx.HTTPError
// @Router       /orders/{id}/state [put]
func transitionOrderHandler(mgr *order.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.TransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json: "+err.Error())
			return
		}
		target, ok := order.ParseState(req.State)
		if !ok {
			httpx.BadRequest(c, "unknown state "+strconv.Quote(req.State))
			return
		}
		o, err := mgr.Transition(c.Request.Context(), c.Param("id"), target)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// settleOrderHandler godoc
// @Summary      Record the sale of a delivered order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID (uuid)"
// @Success      201  {object}  sale.Sale
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id}/sale [post]
func settleOrderHandler(mgr *order.Manager, sales *sale.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := mgr.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		s, err := sales.FromOrder(c.Request.Context(), o)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// pendingNotificationsHandler godoc
// @Summary      Orders ready and not yet notified
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  PendingNotificationsResponse
// @Router       /notifications/pending [get]
func pendingNotificationsHandler(tracker *notify.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := []order.Order{}
		for o, err := range tracker.PollPending(c.Request.Context()) {
			if err != nil {
				httpx.Abort(c, err)
				return
			}
			items = append(items, o)
		}
		c.JSON(http.StatusOK, PendingNotificationsResponse{Count: len(items), Items: items})
	}
}

// markNotifiedHandler godoc
// @Summary      Record that an order's notification was sent
// @Description  Idempotent: marking an already notified order answers 200 with already_notified=true.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      MarkNotifiedRequest  true  "order id or code"
// @Success      200   {object}  MarkNotifiedResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /notifications [post]
func markNotifiedHandler(tracker *notify.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MarkNotifiedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json: "+err.Error())
			return
		}
		var (
			o   *order.Order
			err error
		)
		switch {
		case req.OrderID != "":
			o, err = tracker.MarkNotified(c.Request.Context(), req.OrderID)
		case req.OrderCode != "":
			o, err = tracker.MarkNotifiedByCode(c.Request.Context(), strings.TrimSpace(req.OrderCode))
		default:
			httpx.BadRequest(c, "order_id or order_code is required")
			return
		}
		if errors.Is(err, apperr.ErrAlreadyNotified) {
			c.JSON(http.StatusOK, MarkNotifiedResponse{Order: o, AlreadyNotified: true})
			return
		}
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, MarkNotifiedResponse{Order: o})
	}
}

// createSaleHandler godoc
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      sale.CreateSaleRequest  true  "sale"
// @Success      201   {object}  sale.Sale
// @Failure      400   {object}  httpx.HTTPError
// @Router       /sales [post]
func createSaleHandler(sales *sale.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sale.CreateSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json: "+err.Error())
			return
		}
		s, err := sales.Record(c.Request.Context(), req)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// listSalesHandler godoc
// @Summary      List sales, newest first
// @Tags         sales
// @Produce      json
// @Param        from         query  string  false  "RFC3339 or YYYY-MM-DD"
// @Param        to           query  string  false  "RFC3339 or YYYY-MM-DD (inclusive day)"
// @Param        customer_id  query  string  false  "customer"
// @Param        limit        query  int     false  "limit (default 20, max 100)"
// @Param        offset       query  int     false  "offset"
// @Success      200  {object}  httpx.Page[sale.Sale]
// @Failure      400  {object}  httpx.HTTPError
// @Router       /sales [get]
func listSalesHandler(sales *sale.Service, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryInt(c, "limit", 20)
		if !ok {
			return
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return
		}
		from, err := parseBound(c.Query("from"), loc, false)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		to, err := parseBound(c.Query("to"), loc, true)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		items, err := sales.List(c.Request.Context(), sale.Filter{
			From: from, To: to, CustomerID: c.Query("customer_id"), Limit: limit, Offset: offset,
		})
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, httpx.Page[sale.Sale]{Limit: limit, Offset: offset, Items: items})
	}
}

// salesReportHandler godoc
// @Summary      Sales report
// @Description  Either start and end, or a period (daily, weekly, monthly, yearly) around now. Defaults to today.
// @Tags         reports
// @Produce      json
// @Param        start        query  string  false  "RFC3339 or YYYY-MM-DD"
// @Param        end          query  string  false  "RFC3339 or YYYY-MM-DD (inclusive day)"
// @Param        period       query  string  false  "daily|weekly|monthly|yearly"
// @Param        all_methods  query  bool    false  "list every payment method, zero-filled"
// @Success      200  {object}  sale.Report
// @Failure      400  {object}  httpx.HTTPError
// @Router       /reports/sales [get]
func salesReportHandler(agg *sale.Aggregator, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := agg.Location()
		opts := sale.Options{}
		if v := c.Query("all_methods"); v != "" {
			all, err := strconv.ParseBool(v)
			if err != nil {
				httpx.BadRequest(c, "all_methods must be a boolean")
				return
			}
			opts.AllMethods = all
		}

		rawStart, rawEnd := c.Query("start"), c.Query("end")
		var start, end time.Time
		var err error
		switch {
		case rawStart == "" && rawEnd == "":
			start, end, opts.Kind, err = sale.Period(c.Query("period"), now(), loc)
		case rawStart == "" || rawEnd == "":
			err = apperr.Validation("start and end must be given together")
		default:
			if start, err = parseBound(rawStart, loc, false); err == nil {
				end, err = parseBound(rawEnd, loc, true)
			}
		}
		if err != nil {
			httpx.Abort(c, err)
			return
		}

		r, err := agg.Report(c.Request.Context(), start, end, opts)
		if err != nil {
			httpx.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// parseBound reads an RFC3339 instant or a calendar day in loc. A day used
// as an upper bound covers the whole day.
func parseBound(v string, loc *time.Location, upper bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, v, loc)
	if err != nil {
		return time.Time{}, apperr.Validation("%q is neither RFC3339 nor YYYY-MM-DD", v)
	}
	if upper {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return d, nil
}

// healthHandler godoc
// @Summary      Liveness and store reachability
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Failure      503  {object}  httpx.HTTPError
// @Router       /healthz [get]
func healthHandler(store pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, httpx.HTTPError{Error: "store unavailable"})
			return
		}
		c.String(http.StatusOK, "ok")
	}
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", healthHandler(d.store))

	r.POST("/orders", createOrderHandler(d.orders))
	r.GET("/orders", listOrdersHandler(d.orders))
	r.GET("/orders/:id", getOrderHandler(d.orders))
	r.GET("/orders/code/:code", getOrderByCodeHandler(d.orders))
	r.PUT("/orders/:id/state", transitionOrderHandler(d.orders))
	r.POST("/orders/:id/sale", settleOrderHandler(d.orders, d.sales))

	r.GET("/notifications/pending", pendingNotificationsHandler(d.tracker))
	r.POST("/notifications", markNotifiedHandler(d.tracker))

	r.POST("/sales", createSaleHandler(d.sales))
	r.GET("/sales", listSalesHandler(d.sales, d.reports.Location()))
	r.GET("/reports/sales", salesReportHandler(d.reports, d.now))
	return r
}
