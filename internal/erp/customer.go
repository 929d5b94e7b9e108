package erp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mikelcalvo/backoffice-cli/internal/customer"
	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

const customerDocType = "Customer"

// customerFields are listed so the registries see every CPF and RG.
var customerFields = []string{
	"id", "name", "birthday", "motherName", "fatherName", "cpf", "rg",
	"landline", "cellPhone", "email", "address", "neighborhood", "city", "state", "obs",
}

// ListCustomers returns every customer record.
func (c *Client) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	endpoint, err := listEndpoint(customerDocType, customerFields)
	if err != nil {
		return nil, err
	}
	result, err := c.Request(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var items []customer.Customer
	if err := decodeData(result, &items); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	return items, nil
}

// GetCustomer loads one customer by id.
func (c *Client) GetCustomer(ctx context.Context, id string) (customer.Customer, error) {
	var item customer.Customer
	result, err := c.Request(ctx, "GET", customerDocType+"/"+url.PathEscape(id), nil)
	if err != nil {
		return item, err
	}
	if err := decodeData(result, &item); err != nil {
		return item, fmt.Errorf("customer %s: %w", id, err)
	}
	return item, nil
}

// CreateCustomer stores a new customer and returns it as saved.
func (c *Client) CreateCustomer(ctx context.Context, item customer.Customer) (customer.Customer, error) {
	item.ID = nil
	return c.saveCustomer(ctx, "POST", customerDocType, item)
}

// UpdateCustomer overwrites an existing customer.
func (c *Client) UpdateCustomer(ctx context.Context, item customer.Customer) (customer.Customer, error) {
	endpoint, err := recordEndpoint(customerDocType, item.ID)
	if err != nil {
		return item, err
	}
	return c.saveCustomer(ctx, "PUT", endpoint, item)
}

func (c *Client) saveCustomer(ctx context.Context, method, endpoint string, item customer.Customer) (customer.Customer, error) {
	// Values carries every field, so cleared ones are cleared remotely too.
	result, err := c.Request(ctx, method, endpoint, customer.MapValues(item))
	if err != nil {
		return item, err
	}
	var saved customer.Customer
	if err := decodeData(result, &saved); err != nil {
		return item, fmt.Errorf("customer %s: %w", item.Name, err)
	}
	return saved, nil
}

// DeleteCustomer removes a customer by id.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	endpoint, err := recordEndpoint(customerDocType, &id)
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, "DELETE", endpoint, nil)
	return err
}

// Registries snapshots the CPFs and RGs already taken by customers.
func Registries(customers []customer.Customer) (cpfs, rgs form.Registry) {
	cpfValues := make([]string, 0, len(customers))
	rgValues := make([]string, 0, len(customers))
	for _, cu := range customers {
		cpfValues = append(cpfValues, cu.CPF)
		rgValues = append(rgValues, cu.RG)
	}
	return form.NewRegistry(cpfValues...), form.NewRegistry(rgValues...)
}

// CustomerNames lists customer names in the order given.
func CustomerNames(customers []customer.Customer) []string {
	names := make([]string, 0, len(customers))
	for _, cu := range customers {
		if cu.Name != "" {
			names = append(names, cu.Name)
		}
	}
	return names
}

// CmdCustomerList prints every customer
func (c *Client) CmdCustomerList(ctx context.Context) error {
	fmt.Printf("%sFetching customers...%s\n", Blue, Reset)

	items, err := c.ListCustomers(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Printf("%sNo customers found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sCustomers (%d):%s\n", Cyan, len(items), Reset)
	for _, item := range items {
		fmt.Printf("  %s %s", idOf(item.ID), item.Name)
		if item.CPF != "" {
			fmt.Printf(" - CPF %s%s%s", Yellow, item.CPF, Reset)
		}
		if item.City != "" {
			fmt.Printf(" (%s)", item.City)
		}
		fmt.Println()
	}
	return nil
}

// CmdCustomerGet prints one customer as JSON, with its open debits
func (c *Client) CmdCustomerGet(ctx context.Context, id string) error {
	fmt.Printf("%sFetching customer: %s%s\n", Blue, id, Reset)

	item, err := c.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	jsonOut, _ := json.MarshalIndent(item, "", "  ")
	fmt.Println(string(jsonOut))

	debits, err := c.CustomerDebits(ctx, item.Name)
	if err != nil {
		return err
	}
	if len(debits) == 0 {
		fmt.Printf("%sNo open debits%s\n", Green, Reset)
		return nil
	}
	fmt.Printf("\n%sDebits (%d):%s\n", Red, len(debits), Reset)
	for _, d := range debits {
		fmt.Printf("  %s  %s  %s\n", d.Code, d.Validity, form.FormatMoney(d.Total))
	}
	return nil
}

// CmdCustomerDelete removes a customer
func (c *Client) CmdCustomerDelete(ctx context.Context, id string) error {
	fmt.Printf("%sDeleting customer: %s%s\n", Blue, id, Reset)

	if err := c.DeleteCustomer(ctx, id); err != nil {
		return err
	}

	fmt.Printf("%s✓ Customer deleted: %s%s\n", Green, id, Reset)
	return nil
}

func idOf(id *string) string {
	if id == nil {
		return "-"
	}
	return *id
}
