// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state. Transitions beyond creation are owned
// by the order-management collaborator; the core only ever writes PROCESSING.
type Status string

const (
	StatusPreparing  Status = "PREPARING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// RefundStatus is written by the refund collaborator after creation; the
// core creates orders with RefundNone and never mutates it again.
type RefundStatus string

const (
	RefundNone     RefundStatus = "NONE"
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrInvalidID         = errors.New("order: invalid id")
	ErrInvalidUserID     = errors.New("order: invalid userId")
	ErrInvalidStatus     = errors.New("order: invalid status")
	ErrInvalidItems      = errors.New("order: invalid items")
	ErrInvalidTotalPrice = errors.New("order: invalid totalPrice")
)

// Item is a frozen line snapshot: UnitPrice is the product price at checkout
// and must never change, even when the catalog price does.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is the immutable record produced by a successful checkout. After
// creation it is handed off: status and refund fields are mutated by
// external collaborators on the same persisted row, so the core must not
// assume exclusive write access.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Status     Status          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Items      []Item          `json:"items"`
	OrderDate  time.Time       `json:"orderDate"`

	RefundStatus      RefundStatus `json:"refundStatus"`
	RefundReason      *string      `json:"refundReason,omitempty"`
	RefundRequestedAt *time.Time   `json:"refundRequestedAt,omitempty"`
	RefundProcessedAt *time.Time   `json:"refundProcessedAt,omitempty"`
	DeliveredAt       *time.Time   `json:"deliveredAt,omitempty"`
}

// New creates a checkout-fresh order: status PROCESSING, refund fields at
// their initial values.
func New(id, userID string, totalPrice decimal.Decimal, items []Item, now time.Time) (Order, error) {
	o := Order{
		ID:           strings.TrimSpace(id),
		UserID:       strings.TrimSpace(userID),
		Status:       StatusProcessing,
		TotalPrice:   totalPrice,
		Items:        items,
		OrderDate:    now.UTC(),
		RefundStatus: RefundNone,
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if !validStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.TotalPrice.IsNegative() {
		return ErrInvalidTotalPrice
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.ProductID) == "" {
			return ErrInvalidItems
		}
		if it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return ErrInvalidItems
		}
	}
	return nil
}

func validStatus(s Status) bool {
	switch s {
	case StatusPreparing, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
