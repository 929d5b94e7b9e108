package erp

import (
	"context"
	"fmt"

	"github.com/mikelcalvo/backoffice-cli/internal/budget"
	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

const stockDocType = "Stock"

var stockFields = []string{"id", "description", "quantity", "salePrice"}

// ListStock returns the products available for sale.
func (c *Client) ListStock(ctx context.Context) ([]budget.StockItem, error) {
	endpoint, err := listEndpoint(stockDocType, stockFields)
	if err != nil {
		return nil, err
	}
	result, err := c.Request(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var items []budget.StockItem
	if err := decodeData(result, &items); err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	return items, nil
}

// CmdStockList prints the products available for sale
func (c *Client) CmdStockList(ctx context.Context) error {
	fmt.Printf("%sFetching stock...%s\n", Blue, Reset)

	items, err := c.ListStock(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Printf("%sNo products in stock%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sStock (%d):%s\n", Cyan, len(items), Reset)
	for _, item := range items {
		qty := fmt.Sprintf("%d", item.Quantity)
		if item.Quantity <= 0 {
			qty = Red + qty + Reset
		}
		fmt.Printf("  📦 %s %s - %s un. - %s\n", item.ID, item.Description, qty, form.FormatMoney(item.SalePrice))
	}
	return nil
}
