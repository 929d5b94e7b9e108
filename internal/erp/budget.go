package erp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mikelcalvo/backoffice-cli/internal/budget"
	"github.com/mikelcalvo/backoffice-cli/internal/customer"
	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

const budgetDocType = "Budget"

// budgetFields are the list columns. Products and payment are child data a
// list does not carry; GetBudget loads them.
var budgetFields = []string{
	"id", "code", "customer", "validity", "observation", "status", "isInDebit", "subtotal", "total",
}

// ListBudgets returns every budget record.
func (c *Client) ListBudgets(ctx context.Context) ([]budget.Budget, error) {
	return c.listBudgets(ctx)
}

func (c *Client) listBudgets(ctx context.Context, filters ...filter) ([]budget.Budget, error) {
	endpoint, err := listEndpoint(budgetDocType, budgetFields, filters...)
	if err != nil {
		return nil, err
	}
	result, err := c.Request(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var items []budget.Budget
	if err := decodeData(result, &items); err != nil {
		return nil, fmt.Errorf("budgets: %w", err)
	}
	return items, nil
}

// GetBudget loads one budget by id.
func (c *Client) GetBudget(ctx context.Context, id string) (budget.Budget, error) {
	var item budget.Budget
	result, err := c.Request(ctx, "GET", budgetDocType+"/"+url.PathEscape(id), nil)
	if err != nil {
		return item, err
	}
	if err := decodeData(result, &item); err != nil {
		return item, fmt.Errorf("budget %s: %w", id, err)
	}
	return item, nil
}

// CreateBudget stores a new budget. Totals are recomputed from the
// products before sending.
func (c *Client) CreateBudget(ctx context.Context, v budget.Values) (budget.Budget, error) {
	v.ID = nil
	v.Recalculate()
	return c.saveBudget(ctx, "POST", budgetDocType, v)
}

// UpdateBudget overwrites an existing budget.
func (c *Client) UpdateBudget(ctx context.Context, v budget.Values) (budget.Budget, error) {
	endpoint, err := recordEndpoint(budgetDocType, v.ID)
	if err != nil {
		return v.Record(), err
	}
	v.Recalculate()
	return c.saveBudget(ctx, "PUT", endpoint, v)
}

// ConfirmBudgetPayment stores the payment of an approved budget. Whatever
// the payment leaves unpaid keeps the budget in debit for its customer.
func (c *Client) ConfirmBudgetPayment(ctx context.Context, v budget.Values) (budget.Budget, error) {
	endpoint, err := recordEndpoint(budgetDocType, v.ID)
	if err != nil {
		return v.Record(), err
	}
	v.Status = budget.StatusApproved
	v.Recalculate()
	v.IsInDebit = v.PaymentInfo.Paid().LessThan(v.Total)
	return c.saveBudget(ctx, "PUT", endpoint, v)
}

func (c *Client) saveBudget(ctx context.Context, method, endpoint string, v budget.Values) (budget.Budget, error) {
	result, err := c.Request(ctx, method, endpoint, v)
	if err != nil {
		return v.Record(), err
	}
	var saved budget.Budget
	if err := decodeData(result, &saved); err != nil {
		return v.Record(), fmt.Errorf("budget %s: %w", v.Code, err)
	}
	return saved, nil
}

// DeleteBudget removes a budget by id.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	endpoint, err := recordEndpoint(budgetDocType, &id)
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, "DELETE", endpoint, nil)
	return err
}

// CustomerDebits lists the budgets a customer still owes.
func (c *Client) CustomerDebits(ctx context.Context, customerName string) ([]customer.Debit, error) {
	if customerName == "" {
		return nil, nil
	}
	items, err := c.listBudgets(ctx,
		filter{"customer", "=", customerName},
		filter{"isInDebit", "=", 1},
	)
	if err != nil {
		return nil, err
	}

	debits := make([]customer.Debit, 0, len(items))
	for _, item := range items {
		v := budget.MapValues(item)
		debits = append(debits, customer.Debit{Code: v.Code, Validity: v.Validity, Total: v.Total})
	}
	return debits, nil
}

// CmdBudgetList prints every budget
func (c *Client) CmdBudgetList(ctx context.Context) error {
	fmt.Printf("%sFetching budgets...%s\n", Blue, Reset)

	items, err := c.ListBudgets(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Printf("%sNo budgets found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sBudgets (%d):%s\n", Cyan, len(items), Reset)
	for _, item := range items {
		v := budget.MapValues(item)
		status := fmt.Sprintf("%s[%s]%s", Yellow, v.Status, Reset)
		if v.Status == budget.StatusApproved {
			status = fmt.Sprintf("%s[%s]%s", Green, v.Status, Reset)
		}
		fmt.Printf("  %s %s %s - %s %s", idOf(v.ID), v.Code, status, v.Customer, form.FormatMoney(v.Total))
		if v.IsInDebit {
			fmt.Printf(" %s[em débito]%s", Red, Reset)
		}
		fmt.Println()
	}
	return nil
}

// CmdBudgetGet prints one budget as JSON
func (c *Client) CmdBudgetGet(ctx context.Context, id string) error {
	fmt.Printf("%sFetching budget: %s%s\n", Blue, id, Reset)

	item, err := c.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	jsonOut, _ := json.MarshalIndent(budget.MapValues(item), "", "  ")
	fmt.Println(string(jsonOut))
	return nil
}
