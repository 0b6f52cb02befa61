package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/pintwise/internal/adapter/http/dto"
)

func runCLI(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	if a.confirm == nil {
		a.confirm = func(string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		}
	}

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sampleEntry() *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:          "01HZX0000000000000000000AA",
		Debtor:      "Alice",
		Creditor:    "Bob",
		Description: "quiz night",
		Amount:      decimal.NewFromInt(1),
		Status:      "pending",
		DateCreated: time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "pi...", truncate("pintésé", 5))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}))

	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestAddCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/entries", r.URL.Path)

		var req dto.CreateEntryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Alice", req.Debtor)
		assert.Equal(t, "Bob", req.Creditor)
		assert.Equal(t, "quiz night", req.Description)

		entry := sampleEntry()
		if assert.NotNil(t, req.Amount) {
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("2.5")))
			entry.Amount = *req.Amount
		}
		writeTestJSON(w, http.StatusCreated, entry)
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "add", "Alice", "Bob", "-d", "quiz night", "-a", "2.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded:")
	assert.Contains(t, out, "Alice owes Bob 2.5 pint(s)")
}

func TestAddCmd_DefaultAmountOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateEntryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.Amount)
		writeTestJSON(w, http.StatusCreated, sampleEntry())
	}))
	defer srv.Close()

	_, err := runCLI(t, &app{}, "--url", srv.URL, "add", "Alice", "Bob")
	require.NoError(t, err)
}

func TestAddCmd_InvalidAmount(t *testing.T) {
	_, err := runCLI(t, &app{}, "--url", "http://127.0.0.1:1", "add", "Alice", "Bob", "-a", "lots")
	assert.ErrorContains(t, err, "invalid amount")
}

func TestAddCmd_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation failed",
			Message: "debtor and creditor must be different people",
		})
	}))
	defer srv.Close()

	_, err := runCLI(t, &app{}, "--url", srv.URL, "add", "Alice", "Alice")

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Contains(t, err.Error(), "must be different")
}

func TestPendingCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entries/pending", r.URL.Path)
		assert.Equal(t, "quiz", r.URL.Query().Get("q"))
		writeTestJSON(w, http.StatusOK, dto.EntryListResponse{
			Entries: []*dto.EntryResponse{sampleEntry()},
			Count:   1,
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "pending", "-q", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "quiz night")
}

func TestPendingCmd_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, dto.EntryListResponse{Entries: []*dto.EntryResponse{}})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending pints.")
}

func TestHistoryCmd_PassesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entries", r.URL.Path)
		assert.Equal(t, "paid", r.URL.Query().Get("status"))

		entry := sampleEntry()
		paidAt := entry.DateCreated.Add(time.Hour)
		entry.Status = "paid"
		entry.DatePaid = &paidAt
		writeTestJSON(w, http.StatusOK, dto.EntryListResponse{Entries: []*dto.EntryResponse{entry}, Count: 1})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "history", "--status", "paid")
	require.NoError(t, err)
	assert.Contains(t, out, "paid")
}

func TestSearchCmd_JoinsArgs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quiz night", r.URL.Query().Get("q"))
		writeTestJSON(w, http.StatusOK, dto.EntryListResponse{Entries: []*dto.EntryResponse{}})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "search", "quiz", "night")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries.")
}

func TestBalancesCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/balances", r.URL.Path)
		writeTestJSON(w, http.StatusOK, dto.BalancesResponse{Balances: []dto.NetBalanceResponse{
			{Debtor: "Alice", Creditor: "Bob", Amount: decimal.RequireFromString("1.5")},
		}})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "balances")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "1.50")
}

func TestBalancesCmd_AllSquare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, dto.BalancesResponse{Balances: []dto.NetBalanceResponse{}})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "balances")
	require.NoError(t, err)
	assert.Contains(t, out, "All square")
}

func TestStatsCmd_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, dto.StatsResponse{
			Total:          decimal.NewFromInt(3),
			Pending:        decimal.NewFromInt(2),
			Paid:           decimal.NewFromInt(1),
			Entries:        3,
			PendingEntries: 2,
			PaidEntries:    1,
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "--json", "stats")
	require.NoError(t, err)

	var got dto.StatsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Entries)
	assert.True(t, got.Pending.Equal(decimal.NewFromInt(2)))
}

func TestPayCmd_Confirmed(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/entries/abc/pay", r.URL.Path)
		writeTestJSON(w, http.StatusOK, dto.PaidResponse{ID: "abc", Paid: true})
	}))
	defer srv.Close()

	a := &app{confirm: func(title string) (bool, error) {
		assert.Contains(t, title, "abc")
		return true, nil
	}}

	out, err := runCLI(t, a, "--url", srv.URL, "pay", "abc")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, out, "Paid:")
}

func TestPayCmd_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	a := &app{confirm: func(string) (bool, error) { return false, nil }}

	out, err := runCLI(t, a, "--url", srv.URL, "pay", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
}

func TestDeleteCmd_YesSkipsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/entries/abc", r.URL.Path)
		writeTestJSON(w, http.StatusOK, dto.DeletedResponse{ID: "abc", Deleted: true})
	}))
	defer srv.Close()

	out, err := runCLI(t, &app{}, "--url", srv.URL, "delete", "abc", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted:")
}

func TestDeleteCmd_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "entry not found"})
	}))
	defer srv.Close()

	_, err := runCLI(t, &app{}, "--url", srv.URL, "delete", "missing", "-y")

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "entry not found", apiErr.Message)
}

func TestConfigFile_SetsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, dto.BalancesResponse{Balances: []dto.NetBalanceResponse{}})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "pintwise.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: "+srv.URL+"\ntimeout: 2s\n"), 0o600))

	a := &app{}
	_, err := runCLI(t, a, "--config", path, "balances")
	require.NoError(t, err)
	assert.Equal(t, srv.URL, a.baseURL)
	assert.Equal(t, 2*time.Second, a.timeout)
}

func TestConfigFile_FlagOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, dto.BalancesResponse{Balances: []dto.NetBalanceResponse{}})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "pintwise.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: http://127.0.0.1:1\n"), 0o600))

	a := &app{}
	_, err := runCLI(t, a, "--config", path, "--url", srv.URL, "balances")
	require.NoError(t, err)
	assert.Equal(t, srv.URL, a.baseURL)
}

func TestConfigFile_ExplicitMissing(t *testing.T) {
	_, err := runCLI(t, &app{}, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "balances")
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoadFileConfig_DefaultMissingIsFine(t *testing.T) {
	cfg, err := loadFileConfig(filepath.Join(t.TempDir(), defaultConfigName), false)
	require.NoError(t, err)
	assert.Empty(t, cfg.URL)
}
