package inventoryapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestClientSendsBearerToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Response{Status: 200, Message: "success"})
	}))
	defer server.Close()

	client := NewClient(server.URL, func() string { return "abc123" })
	if _, err := client.GetProducts(context.Background()); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization: got %q, want %q", gotAuth, "Bearer abc123")
	}
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Response{Status: 200, Message: "success"})
	}))
	defer server.Close()

	client := NewClient(server.URL, func() string { return "" })
	if _, err := client.GetProducts(context.Background()); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization: got %q, want none", gotAuth)
	}
}

func TestClientAPIErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(Response{Status: 422, Message: "Insufficient stock for this sale"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.CreateSale(context.Background(), SaleRequest{ProductID: uuid.New(), Quantity: 3})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("CreateSale: got %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode: got %d, want 422", apiErr.StatusCode)
	}
	if apiErr.Message != "Insufficient stock for this sale" {
		t.Errorf("Message: got %q, want the server's wording verbatim", apiErr.Message)
	}
}

func TestClientTransportErrorOnUnreachableServer(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.GetProducts(context.Background())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("GetProducts: got %v, want TransportError", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(Response{Status: 404, Message: "Product Not Found"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.GetProduct(context.Background(), uuid.New())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetProduct: got %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode: got %d, want 404", apiErr.StatusCode)
	}
}

func TestLoginParsesTokenAndUser(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path: got %q, want /auth/login", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "manager@example.com" {
			t.Errorf("email: got %q", body["email"])
		}
		json.NewEncoder(w).Encode(Response{
			Status:  200,
			Message: "Login successful",
			Token:   "signed-jwt",
			User:    &User{ID: userID, Email: "manager@example.com", Role: "MANAGER"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	resp, err := client.Login(context.Background(), "manager@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "signed-jwt" {
		t.Errorf("Token: got %q", resp.Token)
	}
	if resp.User == nil || resp.User.ID != userID {
		t.Errorf("User: got %+v, want id %s", resp.User, userID)
	}
}
