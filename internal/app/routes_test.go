package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/test_utils"
	"github.com/kharcha/kharcha/pkg/bills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()

	db := test_utils.SetupTestDB(t)
	cfg := config.Application{
		Storage: config.Storage{Namespace: "kharcha"},
		Defaults: config.Defaults{
			BudgetLimit:      1000000,
			WarningThreshold: 80,
			PeriodDays:       30,
			ReminderTime:     "21:30",
		},
	}

	router := mux.NewRouter()
	RegisterRoutes(router, BuildDependencies(db, cfg), cfg)
	return router
}

func serve(router *mux.Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createBillThroughRouter(t *testing.T, router *mux.Router) bills.BillDTO {
	t.Helper()

	body := bytes.NewBufferString(`{"name":"Rent","amount":15000,"frequency":"monthly","dueDate":"2024-04-01"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bill", body)
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created bills.BillDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.NotZero(t, created.ID)
	return created
}

// The bill id travels as a path variable, so these requests have to go
// through the real router rather than straight to the handler.
func TestRegisterRoutes_BillLifecycle(t *testing.T) {
	t.Run("should mark a bill paid through its id path", func(t *testing.T) {
		router := setupRouter(t)
		created := createBillThroughRouter(t, router)

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/bill/%d/paid", created.ID), nil)
		w := serve(router, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var paid bills.BillDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&paid))
		assert.Equal(t, created.ID, paid.ID)
		assert.NotEmpty(t, paid.LastPaid)
	})

	t.Run("should update a bill through its id path", func(t *testing.T) {
		router := setupRouter(t)
		created := createBillThroughRouter(t, router)

		body := bytes.NewBufferString(`{"name":"Rent","amount":16000,"frequency":"monthly","dueDate":"2024-04-01","isActive":true}`)
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/bill/%d", created.ID), body)
		req.Header.Set("Content-Type", "application/json")
		w := serve(router, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated bills.BillDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, 16000.0, updated.Amount)
	})

	t.Run("should delete a bill through its id path", func(t *testing.T) {
		router := setupRouter(t)
		created := createBillThroughRouter(t, router)

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/bill/%d", created.ID), nil)
		w := serve(router, req)

		require.Equal(t, http.StatusNoContent, w.Code)

		listW := serve(router, httptest.NewRequest(http.MethodGet, "/api/bill", nil))
		require.Equal(t, http.StatusOK, listW.Code)
		var remaining []bills.BillDTO
		require.NoError(t, json.NewDecoder(listW.Body).Decode(&remaining))
		assert.Empty(t, remaining)
	})

	t.Run("should reject a non-numeric bill id", func(t *testing.T) {
		router := setupRouter(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/bill/not-a-number", nil)
		w := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
