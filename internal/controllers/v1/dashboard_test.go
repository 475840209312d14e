package v1_test

import (
	"net/http"

	v1 "github.com/moneydash/backend/internal/controllers/v1"
	"github.com/moneydash/backend/internal/models"
	"github.com/moneydash/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDashboard() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{Name: "Checking"})
	envelope := suite.createTestEnvelope(models.Envelope{
		Name:      "Groceries",
		AccountID: account.ID,
		Allocated: decimal.NewFromInt(500),
		Spent:     decimal.NewFromFloat(120.5),
	})
	envelopeID := envelope.ID

	_ = suite.createTestTransaction(models.Transaction{
		Note:       "Allocation",
		Amount:     decimal.NewFromInt(500),
		AccountID:  account.ID,
		EnvelopeID: &envelopeID,
		Source:     models.SourceAllocation,
	})
	_ = suite.createTestTransaction(models.Transaction{
		Note:       "Groceries",
		Amount:     decimal.NewFromFloat(-120.5),
		AccountID:  account.ID,
		EnvelopeID: &envelopeID,
	})

	r := test.Request(t, http.MethodGet, "/v1/dashboard", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var summaries []v1.AccountSummary
	test.DecodeResponse(t, &r, &summaries)
	require.Len(t, summaries, 1)
	require.Len(t, summaries[0].Envelopes, 1)

	summary := summaries[0].Envelopes[0]
	assert.True(t, summary.Remaining.Equal(decimal.NewFromFloat(379.5)), "remaining is %s, should be 379.5", summary.Remaining)
	assert.True(t, summary.Incoming.Equal(decimal.NewFromInt(500)), "incoming is %s, should be 500", summary.Incoming)
	assert.True(t, summary.Outgoing.Equal(decimal.NewFromFloat(120.5)), "outgoing is %s, should be 120.5", summary.Outgoing)
}

func (suite *TestSuiteStandard) TestDashboardSkipsArchived() {
	t := suite.T()

	active := suite.createTestAccount(models.Account{Name: "Checking"})
	_ = suite.createTestAccount(models.Account{Name: "Old savings", Archived: true})

	r := test.Request(t, http.MethodGet, "/v1/dashboard", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var summaries []v1.AccountSummary
	test.DecodeResponse(t, &r, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, active.ID, summaries[0].Account.ID)
}

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	t := suite.T()

	r := test.Request(t, http.MethodGet, "/v1/dashboard", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var summaries []v1.AccountSummary
	test.DecodeResponse(t, &r, &summaries)
	assert.Empty(t, summaries)
}
