package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mikelcalvo/backoffice-cli/internal/budget"
	"github.com/mikelcalvo/backoffice-cli/internal/customer"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&Config{
		ERPURL:          srv.URL,
		APIKey:          "key",
		APISecret:       "secret",
		NginxCookie:     "cookie-value",
		NginxCookieName: "auth_cookie",
		RequestTimeout:  2 * time.Second,
	}, nil)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestRequestHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/resource/Customer", r.URL.Path)
		require.Equal(t, "0", r.URL.Query().Get("limit_page_length"))
		require.Equal(t, "token key:secret", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		require.NoError(t, err)

		cookie, err := r.Cookie("auth_cookie")
		require.NoError(t, err)
		require.Equal(t, "cookie-value", cookie.Value)

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "c-1", "name": "Ana", "cpf": "111.111.111-11", "rg": "123"},
				{"id": "c-2", "name": "Bruno"},
			},
		})
	})

	items, err := client.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "c-1", *items[0].ID)
	require.Equal(t, "111.111.111-11", items[0].CPF)

	cpfs, rgs := Registries(items)
	require.True(t, cpfs.Contains("111.111.111-11"))
	require.Equal(t, 1, cpfs.Len())
	require.True(t, rgs.Contains("123"))
	require.Equal(t, []string{"Ana", "Bruno"}, CustomerNames(items))
}

func TestRequestErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/resource/Customer/missing":
			writeJSON(t, w, http.StatusNotFound, map[string]interface{}{"exc_type": "DoesNotExistError"})
		case "/api/resource/Customer/broken":
			writeJSON(t, w, http.StatusExpectationFailed, map[string]interface{}{"exception": "frappe.exceptions.ValidationError"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>oops</html>"))
		}
	})
	ctx := context.Background()

	_, err := client.GetCustomer(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetCustomer(ctx, "broken")
	require.ErrorContains(t, err, "API error: frappe.exceptions.ValidationError")

	_, err = client.GetCustomer(ctx, "html")
	require.ErrorContains(t, err, "failed to parse response")
}

func TestMissingIDNeverHitsServer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL)
	})
	ctx := context.Background()

	_, err := client.UpdateCustomer(ctx, customer.Customer{Name: "Ana"})
	require.ErrorIs(t, err, ErrMissingID)

	_, err = client.ConfirmBudgetPayment(ctx, budget.Values{})
	require.ErrorIs(t, err, ErrMissingID)

	require.ErrorIs(t, client.DeleteBudget(ctx, ""), ErrMissingID)
}

func TestSaveCustomerSendsEveryField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/resource/Customer/c-1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Ana Souza", body["name"])
		// cleared fields are sent empty, not dropped
		require.Contains(t, body, "email")
		require.Equal(t, "", body["email"])

		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": body})
	})

	id := "c-1"
	saved, err := client.UpdateCustomer(context.Background(), customer.Customer{ID: &id, Name: "Ana Souza"})
	require.NoError(t, err)
	require.Equal(t, "Ana Souza", saved.Name)
	require.Equal(t, "c-1", *saved.ID)
}

func TestCustomerDebits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/resource/Budget", r.URL.Path)

		var filters []interface{}
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("filters")), &filters))
		require.Equal(t, []interface{}{
			[]interface{}{"customer", "=", "Ana"},
			[]interface{}{"isInDebit", "=", float64(1)},
		}, filters)

		_, _ = w.Write([]byte(`{"data":[{"id":"b-1","code":"ORC-1","validity":"10/11/2026","total":150.75,"isInDebit":true}]}`))
	})

	debits, err := client.CustomerDebits(context.Background(), "Ana")
	require.NoError(t, err)
	require.Len(t, debits, 1)
	require.Equal(t, "ORC-1", debits[0].Code)
	require.Equal(t, "10/11/2026", debits[0].Validity)
	require.True(t, decimal.RequireFromString("150.75").Equal(debits[0].Total))

	none, err := client.CustomerDebits(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestConfirmBudgetPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/resource/Budget/b-1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "APPROVED", body["status"])
		require.Equal(t, true, body["isInDebit"])
		require.Equal(t, "100", body["total"])

		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": body})
	})

	id := "b-1"
	v := budget.MapValues(budget.Budget{
		ID:       &id,
		Code:     "ORC-1",
		Customer: "Ana",
		Validity: "10/11/2026",
		Products: []budget.Product{{ID: "p-1", Description: "Caneta", Quantity: 2, SalePrice: decimal.NewFromInt(50)}},
	})
	v.PaymentInfo.MoneyValue = "60,00"

	saved, err := client.ConfirmBudgetPayment(context.Background(), v)
	require.NoError(t, err)
	require.Equal(t, budget.StatusApproved, saved.Status)
	require.True(t, saved.IsInDebit)
	require.NotNil(t, saved.PaymentInfo)
	require.Equal(t, "60,00", saved.PaymentInfo.MoneyValue)
}

func TestListStock(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/resource/Stock", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"p-1","description":"Caneta","quantity":10,"salePrice":"2.50"}]}`))
	})

	items, err := client.ListStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 10, items[0].Quantity)
	require.True(t, decimal.RequireFromString("2.5").Equal(items[0].SalePrice))
}

func TestDetectConnectionPrefersVPN(t *testing.T) {
	vpn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, loggedUserPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"admin@example.com"}`))
	}))
	t.Cleanup(vpn.Close)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	client.Config.ERPVPN = vpn.URL

	user, err := client.Ping(context.Background())
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", user)
	require.Equal(t, "vpn", client.Mode)
	require.Equal(t, vpn.URL, client.ActiveURL)

	vpn.Close()
	client.DetectConnection(context.Background())
	require.Equal(t, "internet", client.Mode)
	require.Equal(t, client.Config.ERPURL, client.ActiveURL)
}

func TestListEndpoint(t *testing.T) {
	endpoint, err := listEndpoint("Budget", []string{"id", "code"})
	require.NoError(t, err)
	require.Equal(t, "Budget?limit_page_length=0&fields=%5B%22id%22%2C%22code%22%5D", endpoint)

	endpoint, err = listEndpoint("Budget", []string{"id"}, filter{"customer", "=", "Ana & Co"})
	require.NoError(t, err)
	require.Equal(t, "Budget?limit_page_length=0&fields=%5B%22id%22%5D&filters=%5B%5B%22customer%22%2C%22%3D%22%2C%22Ana+%26+Co%22%5D%5D", endpoint)

	_, err = listEndpoint("Budget", nil)
	require.Error(t, err)

	_, err = recordEndpoint("Budget", nil)
	require.ErrorIs(t, err, ErrMissingID)
}

// A Frappe list answers only what fields= asks for, so every list query
// must name the columns the forms read.
func TestListsRequestFields(t *testing.T) {
	requested := map[string][]string{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		doctype := r.URL.Path[len("/api/resource/"):]
		raw := r.URL.Query().Get("fields")
		require.NotEmpty(t, raw, "%s listed without fields", doctype)

		var fields []string
		require.NoError(t, json.Unmarshal([]byte(raw), &fields))
		requested[doctype] = fields

		row := map[string]interface{}{}
		for _, f := range fields {
			row[f] = nil
		}
		row["id"] = doctype + "-1"
		switch doctype {
		case "Customer":
			row["name"], row["cpf"], row["rg"] = "Ana", "111.111.111-11", "1234567"
		case "Budget":
			row["code"], row["total"] = "ORC-1", "10"
		case "Stock":
			row["description"], row["quantity"], row["salePrice"] = "Caneta", 3, "2.5"
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": []interface{}{row}})
	})
	ctx := context.Background()

	customers, err := client.ListCustomers(ctx)
	require.NoError(t, err)
	cpfs, rgs := Registries(customers)
	require.True(t, cpfs.Contains("111.111.111-11"))
	require.True(t, rgs.Contains("1234567"))

	budgets, err := client.ListBudgets(ctx)
	require.NoError(t, err)
	require.Equal(t, "ORC-1", budgets[0].Code)

	stock, err := client.ListStock(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stock[0].Quantity)

	require.Subset(t, requested["Customer"], []string{"id", "name", "cpf", "rg"})
	require.Subset(t, requested["Budget"], []string{"id", "code", "customer", "total", "isInDebit"})
	require.Subset(t, requested["Stock"], []string{"id", "description", "quantity", "salePrice"})
}
