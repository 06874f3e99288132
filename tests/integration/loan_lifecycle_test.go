package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	adaptershttp "github.com/iho/loantrack/internal/adapter/http"
	"github.com/iho/loantrack/internal/adapter/http/dto"
	"github.com/iho/loantrack/internal/adapter/http/handler"
	"github.com/iho/loantrack/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/loantrack/internal/adapter/repository/redis"
	infraredis "github.com/iho/loantrack/internal/infrastructure/redis"
	"github.com/iho/loantrack/internal/usecase"
	"github.com/iho/loantrack/tests/testutil"
)

func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	loanRepo := postgres.NewLoanRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idGen := postgres.NewULIDGenerator()
	clock := usecase.SystemClock{}

	loanUC := usecase.NewLoanUseCase(loanRepo, idGen, clock)
	paymentUC := usecase.NewPaymentUseCase(loanRepo, paymentRepo, cache, idGen, clock)
	scheduleUC := usecase.NewScheduleUseCase(loanRepo, paymentRepo, cache)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		LoanHandler:      handler.NewLoanHandler(loanUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC),
		ScheduleHandler:  handler.NewScheduleHandler(scheduleUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: redisrepo.NewIdempotencyStore(redisClient),
	})
}

func TestLoanLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	var loanID string

	t.Run("create loan", func(t *testing.T) {
		req := dto.CreateLoanRequest{
			Name:       "car loan",
			Type:       "auto",
			Principal:  decimal.NewFromInt(15000),
			AnnualRate: decimal.NewFromFloat(6.5),
			TermMonths: 36,
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/loans/", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.LoanResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.ID == "" {
			t.Fatal("expected loan ID to be assigned")
		}
		loanID = resp.ID
	})

	t.Run("record payment with computed split", func(t *testing.T) {
		req := dto.RecordPaymentRequest{
			Amount: decimal.NewFromFloat(459.83),
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/loans/%s/payments", loanID), bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.PaymentResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		// 15000 * 6.5%/12 = 81.25 interest in the first month.
		if !resp.InterestAmount.Equal(decimal.NewFromFloat(81.25)) {
			t.Fatalf("expected interest 81.25, got %s", resp.InterestAmount)
		}
		if !resp.PrincipalAmount.Add(resp.InterestAmount).Equal(resp.Amount) {
			t.Fatalf("split does not sum to amount: %s + %s != %s",
				resp.PrincipalAmount, resp.InterestAmount, resp.Amount)
		}
	})

	t.Run("schedule reflects recorded payment", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/loans/%s/schedule", loanID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.ScheduleResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(resp.Entries) == 0 {
			t.Fatal("expected schedule entries")
		}
		if !resp.Entries[0].ProjectedBalance.Equal(decimal.NewFromInt(15000)) {
			t.Fatalf("expected month 0 projected balance 15000, got %s", resp.Entries[0].ProjectedBalance)
		}
	})

	t.Run("stats totals match ledger", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/loans/%s/stats", loanID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var stats map[string]decimal.Decimal
		if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if !stats["total_paid"].Equal(decimal.NewFromFloat(459.83)) {
			t.Fatalf("expected total paid 459.83, got %s", stats["total_paid"])
		}
	})

	t.Run("delete loan cascades", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/loans/%s", loanID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
		}

		r = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/loans/%s", loanID), nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", w.Code)
		}
	})
}

func TestIdempotentPaymentReplay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	loan := testDB.CreateTestLoan(ctx, "idempotent", decimal.NewFromInt(10000), decimal.NewFromInt(5), 24)

	body, _ := json.Marshal(dto.RecordPaymentRequest{Amount: decimal.NewFromInt(500)})

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/loans/%s/payments", loan.ID), bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Idempotency-Key", "replay-test-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected second request to be replayed")
	}

	var firstResp, secondResp dto.PaymentResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("failed to parse first response: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("failed to parse second response: %v", err)
	}
	if firstResp.ID != secondResp.ID {
		t.Fatalf("expected identical payment IDs, got %s and %s", firstResp.ID, secondResp.ID)
	}

	r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/loans/%s/payments", loan.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var list dto.ListPaymentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse list response: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected a single ledger entry, got %d", list.Total)
	}
}
