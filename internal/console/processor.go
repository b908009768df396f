package console

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"go-inventory-console/internal/authz"
	"go-inventory-console/internal/session"
	"go-inventory-console/pkg/inventoryapi"
	"go-inventory-console/pkg/validator"

	"github.com/google/uuid"
)

const (
	TypePurchase = "PURCHASE"
	TypeSale     = "SALE"
)

var (
	ErrUnauthenticated    = errors.New("You must be logged in to perform this action")
	ErrForbidden          = errors.New("Only Managers can record stock transactions")
	ErrInsufficientStock  = errors.New("Insufficient stock to complete this sale")
	ErrSubmissionInFlight = errors.New("A submission is already in progress")
)

// InvalidInputError names the missing or malformed fields of a request.
// It is raised before any network call.
type InvalidInputError struct {
	Fields []string
}

func (e *InvalidInputError) Error() string {
	return "Invalid input: " + strings.Join(e.Fields, ", ")
}

// RejectedError is a business rejection from the inventory API; Message is
// the server's wording, passed through verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// NetworkError means the inventory API could not be reached. The user must
// resubmit explicitly; nothing is retried here.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "Inventory service unreachable. Please try again." }
func (e *NetworkError) Unwrap() error { return e.Err }

// TransactionRequest is a purchase or sale submission from the console.
// SupplierID is required for purchases only.
type TransactionRequest struct {
	Type        string    `json:"type" validate:"required,oneof=PURCHASE SALE"`
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Description string    `json:"description"`
	Note        string    `json:"note"`
}

// TransactionResult is the outcome of a committed submission.
type TransactionResult struct {
	Transaction   inventoryapi.Transaction
	StockQuantity int
	Message       string
}

// Processor turns a purchase/sale request into a validated, atomic stock
// change. Authorization and stock sufficiency are both re-checked here
// regardless of what the screens already filtered; the API enforces them
// once more server-side.
type Processor struct {
	sessions   *session.Context
	client     *inventoryapi.Client
	notifier   *Notifier
	submitting atomic.Bool
}

func NewProcessor(sessions *session.Context, client *inventoryapi.Client, notifier *Notifier) *Processor {
	return &Processor{sessions: sessions, client: client, notifier: notifier}
}

// Process validates req and submits it to the inventory API. No mutation is
// attempted when a precondition fails. Only one submission may be in flight
// at a time; concurrent callers get ErrSubmissionInFlight.
//
// ctx stands for the screen that asked: when it is gone by the time the API
// answers, the result is discarded rather than applied to dead state. The
// submission itself is not cancelled; its server-side effect has committed
// or been rejected either way.
func (p *Processor) Process(ctx context.Context, req TransactionRequest) (*TransactionResult, error) {
	// Fail closed: whatever the screen showed, only a manager gets past
	// this point.
	role, ok := p.sessions.CurrentRole()
	if !ok {
		return nil, ErrUnauthenticated
	}
	if !authz.CanRecordTransactions(role) {
		return nil, ErrForbidden
	}

	if err := validate(req); err != nil {
		p.notifier.Notify(err.Error())
		return nil, err
	}

	if !p.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer p.submitting.Store(false)

	product, err := p.client.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, p.report(ctx, err)
	}

	if req.Type == TypeSale && product.StockQuantity-req.Quantity < 0 {
		p.notifier.Notify(ErrInsufficientStock.Error())
		return nil, ErrInsufficientStock
	}

	// The submission rides a non-cancelable context: once sent, the
	// server's verdict stands whether or not the screen survives it.
	callCtx := context.WithoutCancel(ctx)

	var resp *inventoryapi.Response
	if req.Type == TypePurchase {
		resp, err = p.client.CreatePurchase(callCtx, inventoryapi.PurchaseRequest{
			ProductID:   req.ProductID,
			SupplierID:  req.SupplierID,
			Quantity:    req.Quantity,
			Description: req.Description,
			Note:        req.Note,
		})
	} else {
		resp, err = p.client.CreateSale(callCtx, inventoryapi.SaleRequest{
			ProductID:   req.ProductID,
			Quantity:    req.Quantity,
			Description: req.Description,
			Note:        req.Note,
		})
	}

	// Liveness check: the caller may have navigated away while the call
	// was pending. Its state must not be touched then, notices included.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err != nil {
		return nil, p.report(ctx, err)
	}
	if resp.Transaction == nil {
		rejected := &RejectedError{Message: resp.Message}
		p.notifier.Notify(rejected.Message)
		return nil, rejected
	}

	result := &TransactionResult{
		Transaction:   *resp.Transaction,
		StockQuantity: resp.Transaction.ResultingStockQuantity,
		Message:       resp.Message,
	}
	p.notifier.Notify(resp.Message)
	return result, nil
}

// validate applies the local input checks that precede any network call.
func validate(req TransactionRequest) error {
	var fields []string
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		fields = validator.FieldNames(errs)
	}
	if req.Type == TypePurchase && req.SupplierID == uuid.Nil {
		fields = append(fields, "supplier_id")
	}
	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}

// report classifies an API client error, surfaces it to the user when the
// caller is still live, and returns the domain error.
func (p *Processor) report(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var apiErr *inventoryapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			invalid := &InvalidInputError{Fields: []string{"product_id"}}
			p.notifier.Notify(apiErr.Message)
			return invalid
		}
		rejected := &RejectedError{Message: apiErr.Message}
		p.notifier.Notify(rejected.Message)
		return rejected
	}

	var transportErr *inventoryapi.TransportError
	if errors.As(err, &transportErr) {
		netErr := &NetworkError{Err: transportErr}
		p.notifier.Notify(netErr.Error())
		return netErr
	}

	p.notifier.Notify(err.Error())
	return err
}
