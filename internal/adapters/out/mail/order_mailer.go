// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "storefront/internal/domain/order"
)

// OrderMailer implements the usecase OrderNotifier port: it sends a
// plain-text order confirmation through an EmailClient. The recipient is the
// configured orders inbox; customer addresses live with the auth
// collaborator, which is not part of this service.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

func NewOrderMailer(client EmailClient, fromAddress, toAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

func (m *OrderMailer) NotifyOrderCreated(ctx context.Context, o orderdom.Order) error {
	if m.client == nil || m.toAddress == "" {
		return nil
	}

	subject := fmt.Sprintf("Order %s confirmed", o.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s for user %s was created at %s.\n\n",
		o.ID, o.UserID, o.OrderDate.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Items:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  - product %s x%d @ %s\n", it.ProductID, it.Quantity, it.UnitPrice.String())
	}
	fmt.Fprintf(&b, "\nTotal: %s\nStatus: %s\n", o.TotalPrice.String(), o.Status)

	return m.client.Send(ctx, m.fromAddress, m.toAddress, subject, b.String())
}

// NoopNotifier satisfies the OrderNotifier port when mailing is not
// configured (no API key).
type NoopNotifier struct{}

func (NoopNotifier) NotifyOrderCreated(context.Context, orderdom.Order) error { return nil }
