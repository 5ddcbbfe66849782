package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/Arbath/toko-online/internal/adapter/handler"
	"github.com/Arbath/toko-online/internal/adapter/messaging"
	"github.com/Arbath/toko-online/internal/adapter/notify"
	"github.com/Arbath/toko-online/internal/adapter/storage"
	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/event"
	"github.com/Arbath/toko-online/internal/core/service"
	"github.com/Arbath/toko-online/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpAddr := getEnv("HTTP_ADDR", ":8080")

	// In-memory stores back everything by default; MySQL and Redis take over
	// the repositories they implement when configured.
	memory := storage.NewMemoryAdapter()
	if os.Getenv("MYSQL_DSN") == "" {
		seedDemoData(memory)
	}

	var orders port.OrderRepository = memory
	var items port.OrderItemRepository = memory
	var inventory port.InventoryRepository = memory
	var catalog port.ProductCatalog = memory

	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			slog.Error("failed to open mysql", "err", err)
			os.Exit(1)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			slog.Error("failed to ping mysql", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("connected to mysql")

		mysqlAdapter := storage.NewMySQLAdapter(db)
		orders = mysqlAdapter
		items = mysqlAdapter
		inventory = mysqlAdapter
		catalog = mysqlAdapter
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, PoolSize: 100})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect redis", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		slog.Info("connected to redis")

		inventory = storage.NewRedisAdapter(rdb)
	}

	// Event bus and the catalog reactions.
	bus := event.NewBus()

	notifier := notify.NewNotifier(catalog)
	notifier.Register(bus)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		relay := messaging.NewRelay(strings.Split(brokers, ","))
		relay.Register(bus)
		defer relay.Close()
		slog.Info("kafka relay enabled", "brokers", brokers)
	}

	// Core services.
	ledger := service.NewInventoryLedger(inventory, bus)
	itemSet := service.NewOrderItemSet(items, orders)
	lifecycle := service.NewOrderLifecycle(orders, itemSet, ledger, notifier, bus)

	// HTTP server.
	httpHandler := handler.NewHTTPHandler(orders, itemSet, ledger, lifecycle)
	mux := http.NewServeMux()
	httpHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", httpAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	slog.Info("HTTP server stopped")
}

// seedDemoData gives the in-memory setup something to sell.
func seedDemoData(memory *storage.MemoryAdapter) {
	products := []domain.Product{
		{ID: "kopi-gayo-250g", SKU: "KG-250", Name: "Kopi Gayo 250g", Price: 7.50},
		{ID: "teh-melati-100g", SKU: "TM-100", Name: "Teh Melati 100g", Price: 4.25},
		{ID: "gula-aren-500g", SKU: "GA-500", Name: "Gula Aren 500g", Price: 3.00},
	}
	for _, p := range products {
		memory.SeedProduct(p)
		record, err := domain.NewInventoryRecord(p.ID, 100, "jakarta-01")
		if err != nil {
			slog.Error("failed to seed inventory", "product_id", p.ID, "err", err)
			os.Exit(1)
		}
		if err := memory.SaveInventory(context.Background(), record); err != nil {
			slog.Error("failed to seed inventory", "product_id", p.ID, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("seeded demo catalog", "products", len(products))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
