package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"budgetbook/internal/services"
	"budgetbook/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}

	ledger := services.NewLedgerService(repo, nil)
	budgets := services.NewBudgetService(ledger, nil)
	status := services.NewStatusService(ledger, budgets)
	t.Cleanup(func() { ledger.Close() })

	srv := NewServer(":0", ledger, budgets, status)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func createAccount(t *testing.T, ts *httptest.Server, name, balance string) int64 {
	t.Helper()
	resp, body := doJSON(t, ts, http.MethodPost, "/api/accounts", map[string]any{
		"name": name, "type": "Checking", "balance": balance,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create account status = %d, body %v", resp.StatusCode, body)
	}
	return int64(body["id"].(float64))
}

func createCategory(t *testing.T, ts *httptest.Server, name, typ string) int64 {
	t.Helper()
	resp, body := doJSON(t, ts, http.MethodPost, "/api/categories", map[string]any{
		"name": name, "type": typ,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category status = %d, body %v", resp.StatusCode, body)
	}
	return int64(body["id"].(float64))
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := ts.Client().Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}

func TestTransactionLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	accountID := createAccount(t, ts, "Checking", "1000.00")
	categoryID := createCategory(t, ts, "Groceries", "Expense")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/transactions", map[string]any{
		"date": "2026-03-15", "account_id": accountID, "category_id": categoryID,
		"payee": "Market", "amount": "200.00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transaction status = %d, body %v", resp.StatusCode, body)
	}
	txnID := int64(body["id"].(float64))
	if body["amount"] != "200.00" {
		t.Errorf("amount = %v, want 200.00", body["amount"])
	}

	resp, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get account status = %d", resp.StatusCode)
	}
	if body["balance"] != "800.00" {
		t.Errorf("balance after expense = %v, want 800.00", body["balance"])
	}

	resp, _ = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/transactions/%d", txnID), map[string]any{
		"date": "2026-03-15", "account_id": accountID, "category_id": categoryID,
		"payee": "Market", "amount": "50.00",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update transaction status = %d", resp.StatusCode)
	}

	_, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountID), nil)
	if body["balance"] != "950.00" {
		t.Errorf("balance after edit = %v, want 950.00", body["balance"])
	}

	resp, _ = doJSON(t, ts, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", txnID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete transaction status = %d", resp.StatusCode)
	}

	_, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountID), nil)
	if body["balance"] != "1000.00" {
		t.Errorf("balance after delete = %v, want 1000.00", body["balance"])
	}
}

func TestErrorStatusMapping(t *testing.T) {
	ts := newTestServer(t)

	accountID := createAccount(t, ts, "Checking", "0")
	categoryID := createCategory(t, ts, "Groceries", "Expense")

	// Validation: three decimal places.
	resp, _ := doJSON(t, ts, http.MethodPost, "/api/transactions", map[string]any{
		"date": "2026-03-15", "account_id": accountID, "category_id": categoryID,
		"amount": "12.345",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("bad amount status = %d, want 422", resp.StatusCode)
	}

	// Not found.
	resp, _ = doJSON(t, ts, http.MethodGet, "/api/transactions/9999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing transaction status = %d, want 404", resp.StatusCode)
	}

	// Conflict: duplicate account name.
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/accounts", map[string]any{
		"name": "Checking", "type": "Savings",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate account status = %d, want 409", resp.StatusCode)
	}

	// Conflict with dependent rows: account still used by a transaction.
	if resp, _ := doJSON(t, ts, http.MethodPost, "/api/transactions", map[string]any{
		"date": "2026-03-15", "account_id": accountID, "category_id": categoryID,
		"amount": "1.00",
	}); resp.StatusCode != http.StatusCreated {
		t.Fatalf("seed transaction status = %d", resp.StatusCode)
	}
	resp, body := doJSON(t, ts, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", accountID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("guarded delete status = %d, want 409 (body %v)", resp.StatusCode, body)
	}
}

func TestBudgetEvaluationOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	accountID := createAccount(t, ts, "Checking", "0")
	rentID := createCategory(t, ts, "Rent", "Expense")

	resp, body := doJSON(t, ts, http.MethodPost, "/api/budgets", map[string]any{
		"category_id": rentID, "month": 8, "year": 2026, "target": "800.00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create budget status = %d, body %v", resp.StatusCode, body)
	}
	budgetID := int64(body["id"].(float64))

	for _, txn := range []map[string]any{
		{"date": "2026-08-01", "account_id": accountID, "category_id": rentID, "amount": "400.00"},
		{"date": "2026-08-20", "account_id": accountID, "category_id": rentID, "amount": "420.00"},
		{"date": "2026-07-31", "account_id": accountID, "category_id": rentID, "amount": "400.00"},
	} {
		if resp, _ := doJSON(t, ts, http.MethodPost, "/api/transactions", txn); resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed transaction status = %d", resp.StatusCode)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/budgets?month=8&year=2026", nil)
	rawResp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer rawResp.Body.Close()
	var lines []map[string]any
	if err := json.NewDecoder(rawResp.Body).Decode(&lines); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d budget lines, want 1", len(lines))
	}
	line := lines[0]
	if line["spent"] != "820.00" || line["remaining"] != "-20.00" || line["status"] != "Over" {
		t.Errorf("line = %v, want spent 820.00, remaining -20.00, Over", line)
	}

	// Raising the target clears the alarm.
	resp, _ = doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/budgets/%d/target", budgetID), map[string]any{
		"target": "900.00",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set target status = %d", resp.StatusCode)
	}
	resp, body = doJSON(t, ts, http.MethodGet, "/api/status?month=8&year=2026", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status endpoint = %d", resp.StatusCode)
	}
	if body["alarm_count"] != float64(0) {
		t.Errorf("alarm_count = %v, want 0", body["alarm_count"])
	}
	if body["month_spend"] != "820.00" {
		t.Errorf("month_spend = %v, want 820.00", body["month_spend"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	accountID := createAccount(t, ts, "Checking", "0")
	salaryID := createCategory(t, ts, "Salary", "Income")
	funID := createCategory(t, ts, "Fun", "Expense")

	for _, txn := range []map[string]any{
		{"date": "2026-08-01", "account_id": accountID, "category_id": salaryID, "amount": "2500.00"},
		{"date": "2026-08-02", "account_id": accountID, "category_id": funID, "amount": "100.00"},
		{"date": "2026-11-20", "account_id": accountID, "category_id": funID, "amount": "70.00", "planned": true},
	} {
		if resp, _ := doJSON(t, ts, http.MethodPost, "/api/transactions", txn); resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed transaction status = %d", resp.StatusCode)
		}
	}

	resp, body := doJSON(t, ts, http.MethodGet, "/api/status?month=8&year=2026", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	// Gross movement: income and expense magnitudes both count.
	if body["month_spend"] != "2600.00" {
		t.Errorf("month_spend = %v, want 2600.00", body["month_spend"])
	}
	// Planned total spans every month.
	if body["planned_total"] != "70.00" {
		t.Errorf("planned_total = %v, want 70.00", body["planned_total"])
	}

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/status?month=13&year=2026", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("bad month status = %d, want 422", resp.StatusCode)
	}
}
