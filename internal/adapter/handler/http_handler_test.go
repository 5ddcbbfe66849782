package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Arbath/toko-online/internal/adapter/notify"
	"github.com/Arbath/toko-online/internal/adapter/storage"
	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/event"
	"github.com/Arbath/toko-online/internal/core/service"
)

func newTestServer(t *testing.T, stock map[string]int) *httptest.Server {
	t.Helper()

	memory := storage.NewMemoryAdapter()
	for productID, level := range stock {
		record, err := domain.NewInventoryRecord(productID, level, "warehouse-a")
		if err != nil {
			t.Fatalf("seed %s: %v", productID, err)
		}
		if err := memory.SaveInventory(context.Background(), record); err != nil {
			t.Fatalf("seed %s: %v", productID, err)
		}
	}

	bus := event.NewBus()
	notifier := notify.NewNotifier(memory)
	notifier.Register(bus)

	ledger := service.NewInventoryLedger(memory, bus)
	itemSet := service.NewOrderItemSet(memory, memory)
	lifecycle := service.NewOrderLifecycle(memory, itemSet, ledger, notifier, bus)

	mux := http.NewServeMux()
	NewHTTPHandler(memory, itemSet, ledger, lifecycle).RegisterRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestHTTP_OrderFlow(t *testing.T) {
	server := newTestServer(t, map[string]int{"p1": 10, "p2": 10})

	resp, body := postJSON(t, server.URL+"/api/orders", map[string]string{"customer_id": "cust-1"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d", resp.StatusCode)
	}
	orderID := body["id"].(string)
	if body["status"] != "created" {
		t.Errorf("expected status created, got %v", body["status"])
	}

	resp, _ = postJSON(t, server.URL+"/api/orders/"+orderID+"/items",
		addItemRequest{ProductID: "p1", Quantity: 2, UnitPrice: 10.00})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d", resp.StatusCode)
	}
	resp, _ = postJSON(t, server.URL+"/api/orders/"+orderID+"/items",
		addItemRequest{ProductID: "p2", Quantity: 1, UnitPrice: 5.00})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d", resp.StatusCode)
	}

	resp, body = postJSON(t, server.URL+"/api/orders/"+orderID+"/confirm", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["status"] != "confirmed" {
		t.Errorf("expected status confirmed, got %v", body["status"])
	}
	if body["total_amount"].(float64) != 25.00 {
		t.Errorf("expected total 25.00, got %v", body["total_amount"])
	}

	resp, body = postJSON(t, server.URL+"/api/orders/"+orderID+"/ship", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ship: expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "shipped" {
		t.Errorf("expected status shipped, got %v", body["status"])
	}

	// Stock reflects the confirmed quantities.
	stockResp, err := http.Get(server.URL + "/api/inventory/p1")
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	defer stockResp.Body.Close()
	var stock map[string]int
	if err := json.NewDecoder(stockResp.Body).Decode(&stock); err != nil {
		t.Fatalf("decode stock: %v", err)
	}
	if stock["stock_level"] != 8 {
		t.Errorf("expected stock 8, got %d", stock["stock_level"])
	}
}

func TestHTTP_ShipBeforeConfirmConflicts(t *testing.T) {
	server := newTestServer(t, nil)

	_, body := postJSON(t, server.URL+"/api/orders", map[string]string{"customer_id": "cust-1"})
	orderID := body["id"].(string)

	resp, body := postJSON(t, server.URL+"/api/orders/"+orderID+"/ship", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d (%v)", resp.StatusCode, body)
	}
}

func TestHTTP_ConfirmWithoutStockIsGone(t *testing.T) {
	server := newTestServer(t, map[string]int{"p1": 1})

	_, body := postJSON(t, server.URL+"/api/orders", map[string]string{"customer_id": "cust-1"})
	orderID := body["id"].(string)

	postJSON(t, server.URL+"/api/orders/"+orderID+"/items",
		addItemRequest{ProductID: "p1", Quantity: 2, UnitPrice: 4.00})

	resp, _ := postJSON(t, server.URL+"/api/orders/"+orderID+"/confirm", nil)
	if resp.StatusCode != http.StatusGone {
		t.Errorf("expected 410, got %d", resp.StatusCode)
	}
}

func TestHTTP_RestockValidation(t *testing.T) {
	server := newTestServer(t, map[string]int{"p1": 5})

	resp, _ := postJSON(t, server.URL+"/api/inventory/p1/restock", restockRequest{Amount: 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	resp, body := postJSON(t, server.URL+"/api/inventory/p1/restock", restockRequest{Amount: 20})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restock: expected 200, got %d", resp.StatusCode)
	}
	if body["stock_level"].(float64) != 25 {
		t.Errorf("expected stock 25, got %v", body["stock_level"])
	}
}

func TestHTTP_UnknownOrder(t *testing.T) {
	server := newTestServer(t, nil)

	resp, _ := postJSON(t, server.URL+"/api/orders/missing/confirm", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
