package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the inventory API. It is the console's only path to
// inventory state; responses' status and message fields are authoritative
// and failure messages are passed through verbatim.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource func() string
}

// NewClient builds a client for the API rooted at baseURL (including the
// /api/v1 prefix). tokenSource supplies the bearer credential per request;
// it may return "" for unauthenticated calls.
func NewClient(baseURL string, tokenSource func() string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		tokenSource: tokenSource,
	}
}

// APIError is a business rejection reported by the API. The message is the
// server's own wording.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// TransportError means the API was unreachable or the exchange broke down
// before a server verdict arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "inventory api unreachable: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// Response is the envelope every API endpoint answers with.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`

	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at,omitempty"`
	User      *User        `json:"user,omitempty"`
	Users     []User       `json:"users,omitempty"`

	Product      *Product      `json:"product,omitempty"`
	Products     []Product     `json:"products,omitempty"`
	Supplier     *Supplier     `json:"supplier,omitempty"`
	Suppliers    []Supplier    `json:"suppliers,omitempty"`
	Categories   []Category    `json:"categories,omitempty"`
	Transaction  *Transaction  `json:"transaction,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`

	Stats    json.RawMessage `json:"stats,omitempty"`
	Movement json.RawMessage `json:"movement,omitempty"`
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

type Product struct {
	ID            uuid.UUID  `json:"id"`
	SKU           string     `json:"sku"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         int64      `json:"price"`
	StockQuantity int        `json:"stock_quantity"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ImageRef      string     `json:"image_ref,omitempty"`
}

type Supplier struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	Address     string    `json:"address"`
}

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Transaction struct {
	ID                     uuid.UUID  `json:"id"`
	Type                   string     `json:"type"`
	ProductID              uuid.UUID  `json:"product_id"`
	SupplierID             *uuid.UUID `json:"supplier_id,omitempty"`
	Quantity               int        `json:"quantity"`
	Description            string     `json:"description"`
	Note                   string     `json:"note"`
	ResultingStockQuantity int        `json:"resulting_stock_quantity"`
	CreatedAt              time.Time  `json:"created_at"`
}

// PurchaseRequest is the POST /purchases body.
type PurchaseRequest struct {
	ProductID   uuid.UUID `json:"product_id"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Note        string    `json:"note"`
}

// SaleRequest is the POST /sales body.
type SaleRequest struct {
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Note        string    `json:"note"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode >= 400 {
		message := envelope.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return &envelope, nil
}

// Login exchanges credentials for a session token and role claim.
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/login", body)
}

// Register creates a staff account.
func (c *Client) Register(ctx context.Context, email, password, name, phoneNumber string) (*Response, error) {
	body := map[string]string{
		"email":        email,
		"password":     password,
		"name":         name,
		"phone_number": phoneNumber,
	}
	return c.do(ctx, http.MethodPost, "/auth/register", body)
}

func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// SearchProducts filters products by a name/description substring.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products?search="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Product Not Found"}
	}
	return resp.Product, nil
}

func (c *Client) GetSuppliers(ctx context.Context) ([]Supplier, error) {
	resp, err := c.do(ctx, http.MethodGet, "/suppliers", nil)
	if err != nil {
		return nil, err
	}
	return resp.Suppliers, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	resp, err := c.do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) GetTransactions(ctx context.Context) ([]Transaction, error) {
	resp, err := c.do(ctx, http.MethodGet, "/transactions", nil)
	if err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	resp, err := c.do(ctx, http.MethodGet, "/transactions/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	if resp.Transaction == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Transaction Not Found"}
	}
	return resp.Transaction, nil
}

// CreatePurchase submits a purchase as a single atomic request; the API
// persists the stock change and the ledger entry together or not at all.
func (c *Client) CreatePurchase(ctx context.Context, req PurchaseRequest) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/purchases", req)
}

// CreateSale submits a sale as a single atomic request.
func (c *Client) CreateSale(ctx context.Context, req SaleRequest) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/sales", req)
}

func (c *Client) CreateProduct(ctx context.Context, product Product) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/products", product)
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, product Product) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/products/"+id.String(), product)
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil)
}

func (c *Client) GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	resp, err := c.do(ctx, http.MethodGet, "/suppliers/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	if resp.Supplier == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Supplier Not Found"}
	}
	return resp.Supplier, nil
}

func (c *Client) CreateSupplier(ctx context.Context, supplier Supplier) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/suppliers", supplier)
}

func (c *Client) UpdateSupplier(ctx context.Context, id uuid.UUID, supplier Supplier) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/suppliers/"+id.String(), supplier)
}

func (c *Client) DeleteSupplier(ctx context.Context, id uuid.UUID) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/suppliers/"+id.String(), nil)
}

func (c *Client) CreateCategory(ctx context.Context, category Category) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/categories", category)
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, category Category) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/categories/"+id.String(), category)
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/categories/"+id.String(), nil)
}

// GetDashboardStats fetches the overview stats payload for the dashboard
// screen, unparsed: the console renders it as-is.
func (c *Client) GetDashboardStats(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil)
	if err != nil {
		return nil, err
	}
	return resp.Stats, nil
}

// GetStockMovement fetches the daily purchase/sale aggregation for charts.
func (c *Client) GetStockMovement(ctx context.Context, days int) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/dashboard/stock-movement?days=%d", days), nil)
	if err != nil {
		return nil, err
	}
	return resp.Movement, nil
}
