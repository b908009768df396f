package console

import (
	"errors"

	"go-inventory-console/internal/authz"
	"go-inventory-console/internal/session"
	"go-inventory-console/pkg/inventoryapi"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler serves the console screens. Every read and mutation goes through
// the inventory API; the console holds no authoritative inventory state.
type Handler struct {
	sessions  *session.Context
	client    *inventoryapi.Client
	processor *Processor
	notifier  *Notifier
}

func NewHandler(sessions *session.Context, client *inventoryapi.Client, processor *Processor, notifier *Notifier) *Handler {
	return &Handler{sessions: sessions, client: client, processor: processor, notifier: notifier}
}

// apiFail maps an inventory API client error onto the console response,
// keeping the server's message verbatim.
func apiFail(c *fiber.Ctx, err error) error {
	var apiErr *inventoryapi.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{"status": apiErr.StatusCode, "message": apiErr.Message})
	}
	var transportErr *inventoryapi.TransportError
	if errors.As(err, &transportErr) {
		return c.Status(502).JSON(fiber.Map{"status": 502, "message": "Inventory service unreachable. Please try again."})
	}
	return c.Status(500).JSON(fiber.Map{"status": 500, "message": err.Error()})
}

func screen(c *fiber.Ctx, payload fiber.Map) error {
	body := fiber.Map{"status": 200}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(body)
}

// ---- auth flow (the writers of the session context) ----

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}

	resp, err := h.client.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return apiFail(c, err)
	}
	if resp.User == nil {
		return c.Status(502).JSON(fiber.Map{"status": 502, "message": "Malformed login response"})
	}

	h.sessions.Begin(session.Session{
		PrincipalID: resp.User.ID,
		Email:       resp.User.Email,
		Name:        resp.User.Name,
		Role:        authz.Role(resp.User.Role),
		Token:       resp.Token,
		ExpiresAt:   resp.ExpiresAt,
	})

	return screen(c, fiber.Map{"message": "Logged in", "role": resp.User.Role})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	h.sessions.End()
	return screen(c, fiber.Map{"message": "Logged out"})
}

type registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registration
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}

	resp, err := h.client.Register(c.Context(), req.Email, req.Password, req.Name, req.PhoneNumber)
	if err != nil {
		return apiFail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"status": 201, "message": resp.Message})
}

func (h *Handler) Profile(c *fiber.Ctx) error {
	s, ok := h.sessions.Current()
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return screen(c, fiber.Map{
		"principal_id": s.PrincipalID,
		"email":        s.Email,
		"name":         s.Name,
		"role":         s.Role,
	})
}

// ---- read screens ----

func (h *Handler) Products(c *fiber.Ctx) error {
	var products []inventoryapi.Product
	var err error
	if query := c.Query("search"); query != "" {
		products, err = h.client.SearchProducts(c.Context(), query)
	} else {
		products, err = h.client.GetProducts(c.Context())
	}
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"products": products, "notice": h.notifier.Current()})
}

func (h *Handler) Suppliers(c *fiber.Ctx) error {
	suppliers, err := h.client.GetSuppliers(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"suppliers": suppliers, "notice": h.notifier.Current()})
}

func (h *Handler) Categories(c *fiber.Ctx) error {
	categories, err := h.client.GetCategories(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"categories": categories, "notice": h.notifier.Current()})
}

func (h *Handler) Transactions(c *fiber.Ctx) error {
	transactions, err := h.client.GetTransactions(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"transactions": transactions})
}

func (h *Handler) TransactionDetails(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("transactionId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid transaction ID"})
	}
	tx, err := h.client.GetTransaction(c.Context(), id)
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"transaction": tx})
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.client.GetDashboardStats(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	movement, err := h.client.GetStockMovement(c.Context(), 7)
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"stats": stats, "movement": movement})
}

// ---- purchase / sell screens (manager only) ----

// managerGate re-verifies the manager-exclusive rule at the screen
// boundary. Authenticated non-managers (admins included) get the denial
// view, not a redirect.
func (h *Handler) managerGate(c *fiber.Ctx) (bool, error) {
	role, _ := h.sessions.CurrentRole()
	if authz.CanRecordTransactions(role) {
		return true, nil
	}
	return false, c.Status(403).JSON(fiber.Map{
		"status":  403,
		"message": "Access Denied: Only Managers can access this page",
	})
}

// PurchasePage loads the product and supplier choices for the receive form.
func (h *Handler) PurchasePage(c *fiber.Ctx) error {
	if ok, denial := h.managerGate(c); !ok {
		return denial
	}

	products, err := h.client.GetProducts(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	suppliers, err := h.client.GetSuppliers(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{
		"products":  products,
		"suppliers": suppliers,
		"notice":    h.notifier.Current(),
	})
}

// SellPage loads the product choices for the issue form.
func (h *Handler) SellPage(c *fiber.Ctx) error {
	if ok, denial := h.managerGate(c); !ok {
		return denial
	}

	products, err := h.client.GetProducts(c.Context())
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"products": products, "notice": h.notifier.Current()})
}

type submission struct {
	ProductID   uuid.UUID `json:"product_id"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Note        string    `json:"note"`
}

func (h *Handler) SubmitPurchase(c *fiber.Ctx) error {
	return h.submit(c, TypePurchase)
}

func (h *Handler) SubmitSale(c *fiber.Ctx) error {
	return h.submit(c, TypeSale)
}

func (h *Handler) submit(c *fiber.Ctx, txType string) error {
	if ok, denial := h.managerGate(c); !ok {
		return denial
	}

	var req submission
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}

	result, err := h.processor.Process(c.Context(), TransactionRequest{
		Type:        txType,
		ProductID:   req.ProductID,
		SupplierID:  req.SupplierID,
		Quantity:    req.Quantity,
		Description: req.Description,
		Note:        req.Note,
	})
	if err != nil {
		return processorFail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"status":         201,
		"message":        result.Message,
		"transaction":    result.Transaction,
		"stock_quantity": result.StockQuantity,
	})
}

func processorFail(c *fiber.Ctx, err error) error {
	var invalid *InvalidInputError
	var rejected *RejectedError
	var netErr *NetworkError

	status := 400
	switch {
	case errors.Is(err, ErrUnauthenticated):
		status = 401
	case errors.Is(err, ErrForbidden):
		status = 403
	case errors.Is(err, ErrSubmissionInFlight):
		status = 409
	case errors.Is(err, ErrInsufficientStock):
		status = 422
	case errors.As(err, &invalid):
		status = 400
	case errors.As(err, &rejected):
		status = 422
	case errors.As(err, &netErr):
		status = 502
	}
	return c.Status(status).JSON(fiber.Map{"status": status, "message": err.Error()})
}

// ---- admin edit screens (API passthrough) ----

func (h *Handler) AddProduct(c *fiber.Ctx) error {
	var product inventoryapi.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}
	resp, err := h.client.CreateProduct(c.Context(), product)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return c.Status(201).JSON(fiber.Map{"status": 201, "message": resp.Message, "product": resp.Product})
}

func (h *Handler) EditProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid product ID"})
	}
	var product inventoryapi.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}
	resp, err := h.client.UpdateProduct(c.Context(), id, product)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return screen(c, fiber.Map{"message": resp.Message, "product": resp.Product})
}

func (h *Handler) RemoveProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid product ID"})
	}
	resp, err := h.client.DeleteProduct(c.Context(), id)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return screen(c, fiber.Map{"message": resp.Message})
}

func (h *Handler) SupplierDetails(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("supplierId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid supplier ID"})
	}
	supplier, err := h.client.GetSupplier(c.Context(), id)
	if err != nil {
		return apiFail(c, err)
	}
	return screen(c, fiber.Map{"supplier": supplier})
}

func (h *Handler) AddSupplier(c *fiber.Ctx) error {
	var supplier inventoryapi.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}
	resp, err := h.client.CreateSupplier(c.Context(), supplier)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return c.Status(201).JSON(fiber.Map{"status": 201, "message": resp.Message, "supplier": resp.Supplier})
}

func (h *Handler) EditSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("supplierId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid supplier ID"})
	}
	var supplier inventoryapi.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}
	resp, err := h.client.UpdateSupplier(c.Context(), id, supplier)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return screen(c, fiber.Map{"message": resp.Message, "supplier": resp.Supplier})
}

func (h *Handler) RemoveSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("supplierId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid supplier ID"})
	}
	resp, err := h.client.DeleteSupplier(c.Context(), id)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return screen(c, fiber.Map{"message": resp.Message})
}

func (h *Handler) AddCategory(c *fiber.Ctx) error {
	var category inventoryapi.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}
	resp, err := h.client.CreateCategory(c.Context(), category)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return c.Status(201).JSON(fiber.Map{"status": 201, "message": resp.Message})
}

func (h *Handler) EditCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid category ID"})
	}
	var category inventoryapi.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid JSON"})
	}
	resp, err := h.client.UpdateCategory(c.Context(), id, category)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return screen(c, fiber.Map{"message": resp.Message})
}

func (h *Handler) RemoveCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"status": 400, "message": "Invalid category ID"})
	}
	resp, err := h.client.DeleteCategory(c.Context(), id)
	if err != nil {
		return apiFail(c, err)
	}
	h.notifier.Notify(resp.Message)
	return screen(c, fiber.Map{"message": resp.Message})
}
