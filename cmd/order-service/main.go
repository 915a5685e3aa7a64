// @title        Pedidos Restaurante API
// @version      1.0
// @description  Order lifecycle, notification hand-off and sales reporting.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	_ "github.com/MikeMC777/pedidos-restaurante/docs"
	"github.com/MikeMC777/pedidos-restaurante/internal/app"
	"github.com/MikeMC777/pedidos-restaurante/internal/config"
	"github.com/MikeMC777/pedidos-restaurante/internal/notify"
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
	"github.com/MikeMC777/pedidos-restaurante/internal/sale"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer stores.Close()

	loc := cfg.Location()
	d := deps{
		orders:  order.NewManager(stores.Orders),
		tracker: notify.NewTracker(stores.Orders, notify.NewDeliverer(cfg.NotifyWebhookURL, cfg.NotifyWebhookSecret), cfg.DeliveryTimeout),
		sales:   sale.NewService(stores.Sales, cfg.SaleTaxRate),
		reports: sale.NewAggregator(stores.Sales, loc),
		store:   stores.Orders,
		now:     time.Now,
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(d)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("grpc listen: %v", err)
	}
	go watchStore(ctx, hs, stores.Orders, cfg.PollInterval)
	go func() {
		log.Printf("order-service gRPC health listening on %s", cfg.GRPCAddr)
		if err := gs.Serve(lis); err != nil {
			log.Printf("grpc serve: %v", err)
		}
	}()

	srv := &http.Server{Addr: cfg.OrderSvcAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("order-service listening on %s", cfg.OrderSvcAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("order-service shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	gs.GracefulStop()
}
