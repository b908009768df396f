package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go-inventory-console/internal/authz"
	"go-inventory-console/internal/session"
	"go-inventory-console/pkg/inventoryapi"

	"github.com/google/uuid"
)

// mockAPI fakes the inventory API boundary and counts what the processor
// actually sends over the wire.
type mockAPI struct {
	mu            sync.Mutex
	stock         map[uuid.UUID]int
	productCalls  int
	purchaseCalls int
	saleCalls     int

	rejectMessage string        // when set, mutations answer 422 with this message
	holdMutation  chan struct{} // when set, mutations block until it closes
	started       chan struct{} // closed once a mutation arrives
}

func (m *mockAPI) mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purchaseCalls + m.saleCalls
}

type mutationBody struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (m *mockAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.productCalls++
		m.mu.Unlock()

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeJSON(w, 400, map[string]interface{}{"status": 400, "message": "Invalid product ID"})
			return
		}
		m.mu.Lock()
		stock, ok := m.stock[id]
		m.mu.Unlock()
		if !ok {
			writeJSON(w, 404, map[string]interface{}{"status": 404, "message": "Product Not Found"})
			return
		}
		writeJSON(w, 200, map[string]interface{}{
			"status":  200,
			"message": "success",
			"product": map[string]interface{}{
				"id":             id,
				"sku":            "SKU-1",
				"name":           "Widget",
				"stock_quantity": stock,
			},
		})
	})

	mutation := func(txType string, counter *int, delta func(cur, qty int) int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			m.mu.Lock()
			*counter++
			started := m.started
			hold := m.holdMutation
			reject := m.rejectMessage
			m.mu.Unlock()

			if started != nil {
				close(started)
				m.mu.Lock()
				m.started = nil
				m.mu.Unlock()
			}
			if hold != nil {
				<-hold
			}
			if reject != "" {
				writeJSON(w, 422, map[string]interface{}{"status": 422, "message": reject})
				return
			}

			var body mutationBody
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeJSON(w, 400, map[string]interface{}{"status": 400, "message": "Invalid JSON"})
				return
			}

			m.mu.Lock()
			cur := m.stock[body.ProductID]
			resulting := delta(cur, body.Quantity)
			m.stock[body.ProductID] = resulting
			m.mu.Unlock()

			writeJSON(w, 201, map[string]interface{}{
				"status":  201,
				"message": fmt.Sprintf("%s recorded successfully", txType),
				"transaction": map[string]interface{}{
					"id":                       uuid.New(),
					"type":                     txType,
					"product_id":               body.ProductID,
					"quantity":                 body.Quantity,
					"resulting_stock_quantity": resulting,
				},
			})
		}
	}

	mux.HandleFunc("POST /api/v1/purchases", mutation("PURCHASE", &m.purchaseCalls, func(cur, qty int) int { return cur + qty }))
	mux.HandleFunc("POST /api/v1/sales", mutation("SALE", &m.saleCalls, func(cur, qty int) int { return cur - qty }))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func newTestProcessor(t *testing.T, role authz.Role, baseURL string) (*Processor, *Notifier) {
	t.Helper()
	sessions := session.NewContext()
	if role != authz.RoleNone {
		sessions.Begin(session.Session{
			PrincipalID: uuid.New(),
			Role:        role,
			Token:       "test-token",
			ExpiresAt:   time.Now().Add(time.Hour),
		})
	}
	notifier := NewNotifier(nil)
	client := inventoryapi.NewClient(baseURL+"/api/v1", sessions.Token)
	return NewProcessor(sessions, client, notifier), notifier
}

func TestProcessDeniesNonManagers(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{stock: map[uuid.UUID]int{productID: 10}}
	server := api.server(t)

	tests := []struct {
		name    string
		role    authz.Role
		wantErr error
	}{
		{"admin", authz.RoleAdmin, ErrForbidden},
		{"staff", authz.RoleStaff, ErrForbidden},
		{"anonymous", authz.RoleNone, ErrUnauthenticated},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			processor, _ := newTestProcessor(t, test.role, server.URL)

			_, err := processor.Process(context.Background(), TransactionRequest{
				Type:      TypeSale,
				ProductID: productID,
				Quantity:  1,
			})
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Process: got %v, want %v", err, test.wantErr)
			}
		})
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.productCalls != 0 || api.purchaseCalls != 0 || api.saleCalls != 0 {
		t.Errorf("API contacted on forbidden request: %d/%d/%d calls", api.productCalls, api.purchaseCalls, api.saleCalls)
	}
}

func TestProcessInvalidInput(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	supplierID := uuid.New()
	api := &mockAPI{stock: map[uuid.UUID]int{productID: 10}}
	server := api.server(t)

	tests := []struct {
		name      string
		request   TransactionRequest
		wantField string
	}{
		{
			name:      "zero quantity",
			request:   TransactionRequest{Type: TypeSale, ProductID: productID, Quantity: 0},
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			request:   TransactionRequest{Type: TypePurchase, ProductID: productID, SupplierID: supplierID, Quantity: -5},
			wantField: "quantity",
		},
		{
			name:      "missing product",
			request:   TransactionRequest{Type: TypeSale, Quantity: 3},
			wantField: "productid",
		},
		{
			name:      "purchase without supplier",
			request:   TransactionRequest{Type: TypePurchase, ProductID: productID, Quantity: 3},
			wantField: "supplier_id",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			processor, _ := newTestProcessor(t, authz.RoleManager, server.URL)

			_, err := processor.Process(context.Background(), test.request)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("Process: got %v, want InvalidInputError", err)
			}
			found := false
			for _, field := range invalid.Fields {
				if field == test.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("InvalidInputError fields %v, want %q listed", invalid.Fields, test.wantField)
			}
		})
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.productCalls != 0 || api.purchaseCalls != 0 || api.saleCalls != 0 {
		t.Errorf("API contacted on invalid input: %d/%d/%d calls", api.productCalls, api.purchaseCalls, api.saleCalls)
	}
}

func TestProcessSaleInsufficientStock(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{stock: map[uuid.UUID]int{productID: 5}}
	server := api.server(t)
	processor, notifier := newTestProcessor(t, authz.RoleManager, server.URL)

	_, err := processor.Process(context.Background(), TransactionRequest{
		Type:      TypeSale,
		ProductID: productID,
		Quantity:  9,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Process: got %v, want ErrInsufficientStock", err)
	}
	if got := api.mutations(); got != 0 {
		t.Errorf("mutation endpoints called %d times, want 0", got)
	}
	if api.stock[productID] != 5 {
		t.Errorf("stock changed to %d, want 5", api.stock[productID])
	}
	if notifier.Current() == "" {
		t.Error("no user-visible message for insufficient stock")
	}
}

func TestProcessPurchaseAddsStock(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	supplierID := uuid.New()
	api := &mockAPI{stock: map[uuid.UUID]int{productID: 10}}
	server := api.server(t)
	processor, notifier := newTestProcessor(t, authz.RoleManager, server.URL)

	result, err := processor.Process(context.Background(), TransactionRequest{
		Type:       TypePurchase,
		ProductID:  productID,
		SupplierID: supplierID,
		Quantity:   7,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.StockQuantity != 17 {
		t.Errorf("resulting stock: got %d, want 17", result.StockQuantity)
	}
	if result.Transaction.Type != TypePurchase {
		t.Errorf("transaction type: got %q, want PURCHASE", result.Transaction.Type)
	}
	if api.purchaseCalls != 1 {
		t.Errorf("purchase endpoint called %d times, want 1", api.purchaseCalls)
	}
	if notifier.Current() != result.Message {
		t.Errorf("notice %q, want %q", notifier.Current(), result.Message)
	}
}

func TestProcessSaleSubtractsStock(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{stock: map[uuid.UUID]int{productID: 10}}
	server := api.server(t)
	processor, _ := newTestProcessor(t, authz.RoleManager, server.URL)

	result, err := processor.Process(context.Background(), TransactionRequest{
		Type:      TypeSale,
		ProductID: productID,
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.StockQuantity != 6 {
		t.Errorf("resulting stock: got %d, want 6", result.StockQuantity)
	}
	if result.Transaction.Type != TypeSale {
		t.Errorf("transaction type: got %q, want SALE", result.Transaction.Type)
	}
	if api.saleCalls != 1 {
		t.Errorf("sale endpoint called %d times, want 1", api.saleCalls)
	}
}

func TestProcessUnknownProduct(t *testing.T) {
	t.Parallel()
	api := &mockAPI{stock: map[uuid.UUID]int{}}
	server := api.server(t)
	processor, _ := newTestProcessor(t, authz.RoleManager, server.URL)

	_, err := processor.Process(context.Background(), TransactionRequest{
		Type:      TypeSale,
		ProductID: uuid.New(),
		Quantity:  1,
	})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Process: got %v, want InvalidInputError", err)
	}
	if got := api.mutations(); got != 0 {
		t.Errorf("mutation endpoints called %d times, want 0", got)
	}
}

func TestProcessRejectionMessageVerbatim(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{
		stock:         map[uuid.UUID]int{productID: 10},
		rejectMessage: "Product line is discontinued, no further purchases accepted",
	}
	server := api.server(t)
	processor, notifier := newTestProcessor(t, authz.RoleManager, server.URL)

	_, err := processor.Process(context.Background(), TransactionRequest{
		Type:       TypePurchase,
		ProductID:  productID,
		SupplierID: uuid.New(),
		Quantity:   1,
	})
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("Process: got %v, want RejectedError", err)
	}
	if rejected.Message != api.rejectMessage {
		t.Errorf("rejection message %q, want server wording %q", rejected.Message, api.rejectMessage)
	}
	if notifier.Current() != api.rejectMessage {
		t.Errorf("notice %q, want server wording %q", notifier.Current(), api.rejectMessage)
	}
}

func TestProcessNetworkFailure(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{stock: map[uuid.UUID]int{productID: 10}}
	server := api.server(t)
	server.Close() // unreachable from the start

	processor, _ := newTestProcessor(t, authz.RoleManager, server.URL)

	_, err := processor.Process(context.Background(), TransactionRequest{
		Type:      TypeSale,
		ProductID: productID,
		Quantity:  1,
	})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Process: got %v, want NetworkError", err)
	}
}

func TestProcessSingleSubmissionInFlight(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{
		stock:        map[uuid.UUID]int{productID: 10},
		holdMutation: make(chan struct{}),
		started:      make(chan struct{}),
	}
	started := api.started
	server := api.server(t)
	processor, _ := newTestProcessor(t, authz.RoleManager, server.URL)

	done := make(chan error, 1)
	go func() {
		_, err := processor.Process(context.Background(), TransactionRequest{
			Type:      TypeSale,
			ProductID: productID,
			Quantity:  1,
		})
		done <- err
	}()

	<-started // first submission is now in flight

	_, err := processor.Process(context.Background(), TransactionRequest{
		Type:      TypeSale,
		ProductID: productID,
		Quantity:  1,
	})
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("second Process: got %v, want ErrSubmissionInFlight", err)
	}

	close(api.holdMutation)
	if err := <-done; err != nil {
		t.Fatalf("first Process: %v", err)
	}
}

func TestProcessDiscardsResultAfterCancellation(t *testing.T) {
	t.Parallel()
	productID := uuid.New()
	api := &mockAPI{
		stock:        map[uuid.UUID]int{productID: 10},
		holdMutation: make(chan struct{}),
		started:      make(chan struct{}),
	}
	started := api.started
	server := api.server(t)
	processor, notifier := newTestProcessor(t, authz.RoleManager, server.URL)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := processor.Process(ctx, TransactionRequest{
			Type:      TypeSale,
			ProductID: productID,
			Quantity:  4,
		})
		done <- err
	}()

	<-started
	cancel() // the screen navigates away mid-submission
	close(api.holdMutation)

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Process after cancellation: got %v, want context.Canceled", err)
	}
	if got := notifier.Current(); got != "" {
		t.Errorf("stale result surfaced a notice %q, want none", got)
	}
	// The submission was not cancelled: its server-side effect stands.
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.stock[productID] != 6 {
		t.Errorf("server-side stock %d, want 6", api.stock[productID])
	}
}
