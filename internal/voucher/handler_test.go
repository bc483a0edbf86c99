package voucher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/wifidesa/voucher-api/pkg/middleware"
)

func issueHTTP(t *testing.T, f *fixture, body string, withIdentity bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(f.svc)

	req := httptest.NewRequest(http.MethodPost, "/vouchers/issue", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withIdentity {
		ctx := context.WithValue(req.Context(), mw.AgentIDKey, testAgentID)
		req = req.WithContext(ctx)
	}
	w := httptest.NewRecorder()

	handler.Issue(w, req)
	return w
}

func TestIssueHandlerSuccess(t *testing.T) {
	f := newFixture(t, 10000)

	w := issueHTTP(t, f, `{"profile_id":7,"quantity":3,"customer_name":"Pak RT"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Success bool          `json:"success"`
		Data    IssueResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data.Vouchers, 3)
	assert.Equal(t, int64(9000), envelope.Data.TotalCost)
	assert.Equal(t, int64(1000), envelope.Data.BalanceAfter)
	assert.Equal(t, NotificationSkipped, envelope.Data.NotificationStatus)
	assert.NotEmpty(t, envelope.Data.Reference)
}

func TestIssueHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		prepare        func(f *fixture)
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "invalid json",
			body:           `{invalid}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "INVALID_REQUEST",
		},
		{
			name:           "quantity out of range",
			body:           `{"profile_id":7,"quantity":11}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "INVALID_REQUEST",
		},
		{
			name:           "unknown profile",
			body:           `{"profile_id":999,"quantity":1}`,
			expectedStatus: http.StatusNotFound,
			expectedKind:   "NOT_FOUND",
		},
		{
			name:           "insufficient balance",
			body:           `{"profile_id":7,"quantity":10}`,
			expectedStatus: http.StatusPaymentRequired,
			expectedKind:   "INSUFFICIENT_BALANCE",
		},
		{
			name: "gateway down",
			body: `{"profile_id":7,"quantity":1}`,
			prepare: func(f *fixture) {
				f.dialer.openErr = errors.New("connection refused")
			},
			expectedStatus: http.StatusBadGateway,
			expectedKind:   "PROVISIONING_FAILED",
		},
		{
			name: "settlement failure",
			body: `{"profile_id":7,"quantity":1}`,
			prepare: func(f *fixture) {
				f.ledger.commitErr = errors.New("connection lost")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKind:   "POST_ISSUANCE_INCONSISTENCY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 10000)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			w := issueHTTP(t, f, tt.body, true)
			require.Equal(t, tt.expectedStatus, w.Code)

			var envelope struct {
				Success bool `json:"success"`
				Error   *struct {
					Kind string `json:"kind"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.expectedKind, envelope.Error.Kind)
		})
	}
}

func TestIssueHandlerMissingIdentity(t *testing.T) {
	f := newFixture(t, 10000)

	w := issueHTTP(t, f, `{"profile_id":7,"quantity":1}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
