package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stgcatalog/storefront-backend/internal/money"
)

// MessageItem is one product line of the order summary.
type MessageItem struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// FormatMessage renders the plain-text order summary sent through the relay.
// Currency amounts use the same pt-BR formatting as the API totals, so the
// message and the UI can never disagree.
func FormatMessage(userName, userEmail string, items []MessageItem, total decimal.Decimal) string {
	var b strings.Builder

	b.WriteString("*NOVO PEDIDO - STG CATALOG*\n\n")
	fmt.Fprintf(&b, "Cliente: %s\n", userName)
	fmt.Fprintf(&b, "Email: %s\n\n", userEmail)
	b.WriteString("PRODUTOS:\n")
	for _, item := range items {
		subtotal := money.Subtotal(item.Price, item.Quantity)
		fmt.Fprintf(&b, "- %s - Qtd: %d - %s\n", item.Name, item.Quantity, money.Format(subtotal))
	}
	fmt.Fprintf(&b, "\nTOTAL: %s\n\n", money.Format(total))
	b.WriteString("---\nPedido realizado via STG Catalog")

	return b.String()
}
