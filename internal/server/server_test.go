package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/cardlens/internal/insights"
	"github.com/Veraticus/cardlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	data *model.RawData
	err  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(_ context.Context) (*model.RawData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func fixedNow() time.Time {
	now, _ := time.Parse("2006-01-02", "2024-06-15")
	return now
}

func newTestServer(source *stubSource) *Server {
	return New(source, insights.NewAnalyzer(insights.Config{}), fixedNow)
}

func testData() *model.RawData {
	return &model.RawData{
		Users: []model.User{{ID: "u1", Name: "Ayşe", Surname: "Yılmaz"}},
		CreditCards: []model.CreditCard{{
			UserID:         "u1",
			AssignNo:       "c1",
			Limit:          1000,
			AvailableLimit: 100,
		}},
		Transactions: map[string][]model.Transaction{
			"c1": {{Amount: 50, DebtOrCredit: "B", Date: "2024-01-10", MerchantCategoryCode: "5411"}},
		},
	}
}

func TestHandleInsights(t *testing.T) {
	server := newTestServer(&stubSource{data: testData()})

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")

	var result model.Insights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Summary.TotalUsers)
	assert.Equal(t, 1, result.Summary.HighRiskUsers)
	require.Len(t, result.CreditUtilization, 1)
	assert.InDelta(t, 0.90, result.CreditUtilization[0].Utilization, 1e-9)
}

func TestHandleInsightsGenericErrors(t *testing.T) {
	tests := []struct {
		name   string
		source *stubSource
	}{
		{
			name:   "load failure",
			source: &stubSource{err: errors.New("disk exploded: /secret/path")},
		},
		{
			name: "analysis failure",
			source: &stubSource{data: &model.RawData{
				CreditCards: []model.CreditCard{{
					AssignNo:                 "c1",
					StatementDueDate:         "not-a-date",
					RemainingStatementAmount: 50,
				}},
				Transactions: map[string][]model.Transaction{},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(tt.source)

			req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
			rec := httptest.NewRecorder()
			server.Router().ServeHTTP(rec, req)

			require.Equal(t, http.StatusInternalServerError, rec.Code)

			// Internal details never leak into the response body.
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Failed to generate insights", body["error"])
		})
	}
}

func TestHandleFinancialData(t *testing.T) {
	server := newTestServer(&stubSource{data: testData()})

	req := httptest.NewRequest(http.MethodGet, "/api/financial-data", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "users")
	assert.Contains(t, body["users"], "Users")
	assert.Contains(t, body, "creditCards")
	assert.Contains(t, body, "transactions")
}

func TestHandleOptionsCORS(t *testing.T) {
	server := newTestServer(&stubSource{data: testData()})

	req := httptest.NewRequest(http.MethodOptions, "/api/insights", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
}
