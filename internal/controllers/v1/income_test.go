package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/moneydash/backend/internal/controllers/v1"
	"github.com/moneydash/backend/internal/models"
	"github.com/moneydash/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestIncomeProportional() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})
	groceries := suite.createTestEnvelope(models.Envelope{Name: "Groceries", AccountID: account.ID, Allocated: decimal.NewFromInt(500)})
	rent := suite.createTestEnvelope(models.Envelope{Name: "Rent", AccountID: account.ID, Allocated: decimal.NewFromInt(300)})

	r := test.Request(t, http.MethodPost, "/v1/income", map[string]any{
		"accountId": account.ID,
		"amount":    decimal.NewFromInt(1500),
		"note":      "Paycheck March",
	})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(t, &r, &response)

	assert.Equal(t, "proportional", string(response.Strategy))
	assert.Nil(t, response.Warning)
	require.Len(t, response.Transactions, 3)

	income := response.Transactions[0]
	assert.Equal(t, "Paycheck March", income.Note)
	assert.True(t, income.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Nil(t, income.EnvelopeID)
	assert.Equal(t, models.SourceManual, income.Source)

	first := response.Transactions[1]
	assert.True(t, first.Amount.Equal(decimal.NewFromFloat(937.5)), "amount is %s, should be 937.5", first.Amount)
	assert.Equal(t, groceries.ID, *first.EnvelopeID)
	assert.Equal(t, models.SourceAllocation, first.Source)

	second := response.Transactions[2]
	assert.True(t, second.Amount.Equal(decimal.NewFromFloat(562.5)), "amount is %s, should be 562.5", second.Amount)
	assert.Equal(t, rent.ID, *second.EnvelopeID)

	// All transactions are persisted
	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func (suite *TestSuiteStandard) TestIncomeCustomRules() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})

	savings := models.Envelope{Name: "Savings", AccountID: account.ID}
	savings.SetRule(models.AllocationRule{Value: decimal.NewFromInt(30), Kind: models.AllocationPercentage})
	savings = suite.createTestEnvelope(savings)

	fun := models.Envelope{Name: "Fun", AccountID: account.ID}
	fun.SetRule(models.AllocationRule{Value: decimal.NewFromInt(20), Kind: models.AllocationPercentage})
	fun = suite.createTestEnvelope(fun)

	r := test.Request(t, http.MethodPost, "/v1/income", map[string]any{
		"accountId": account.ID,
		"amount":    decimal.NewFromInt(1000),
	})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(t, &r, &response)

	assert.Equal(t, "custom", string(response.Strategy))
	assert.Nil(t, response.Warning)
	require.Len(t, response.Transactions, 3)

	assert.Equal(t, "Income", response.Transactions[0].Note)
	assert.Equal(t, savings.ID, *response.Transactions[1].EnvelopeID)
	assert.True(t, response.Transactions[1].Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, fun.ID, *response.Transactions[2].EnvelopeID)
	assert.True(t, response.Transactions[2].Amount.Equal(decimal.NewFromInt(200)))
}

func (suite *TestSuiteStandard) TestIncomeRuleFallback() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})

	// 70% + 40% is inconsistent, the proportional fallback applies
	savings := models.Envelope{Name: "Savings", AccountID: account.ID, Allocated: decimal.NewFromInt(100)}
	savings.SetRule(models.AllocationRule{Value: decimal.NewFromInt(70), Kind: models.AllocationPercentage})
	_ = suite.createTestEnvelope(savings)

	fun := models.Envelope{Name: "Fun", AccountID: account.ID, Allocated: decimal.NewFromInt(300)}
	fun.SetRule(models.AllocationRule{Value: decimal.NewFromInt(40), Kind: models.AllocationPercentage})
	_ = suite.createTestEnvelope(fun)

	r := test.Request(t, http.MethodPost, "/v1/income", map[string]any{
		"accountId": account.ID,
		"amount":    decimal.NewFromInt(1000),
	})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(t, &r, &response)

	assert.Equal(t, "proportional", string(response.Strategy))
	require.NotNil(t, response.Warning)
	assert.Contains(t, *response.Warning, "percentage allocations must sum to a value between 0 and 100")
	require.Len(t, response.Transactions, 3)
	assert.True(t, response.Transactions[1].Amount.Equal(decimal.NewFromInt(250)))
	assert.True(t, response.Transactions[2].Amount.Equal(decimal.NewFromInt(750)))
}

func (suite *TestSuiteStandard) TestIncomePaycheckDefault() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{
		PaycheckAmount: decimal.NewNullDecimal(decimal.NewFromInt(2000)),
	})
	_ = suite.createTestEnvelope(models.Envelope{AccountID: account.ID, Allocated: decimal.NewFromInt(100)})

	r := test.Request(t, http.MethodPost, "/v1/income", map[string]any{
		"accountId": account.ID,
	})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(t, &r, &response)

	income := response.Transactions[0]
	assert.True(t, income.Amount.Equal(decimal.NewFromInt(2000)), "amount is %s, should be the account's paycheck amount", income.Amount)
	assert.Equal(t, models.SourcePaycheck, income.Source)
}

func (suite *TestSuiteStandard) TestIncomeFails() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "amount": "two" }`, http.StatusBadRequest},
		{"No account", map[string]any{"amount": 100}, http.StatusBadRequest},
		{"Non-existing account", map[string]any{"accountId": "d07595e6-ad25-4c4b-9751-9a72ae02dbb4", "amount": 100}, http.StatusNotFound},
		{"Zero amount without paycheck default", map[string]any{"accountId": account.ID}, http.StatusBadRequest},
		{"Negative amount", map[string]any{"accountId": account.ID, "amount": -100}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/income", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomePreview() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})
	groceries := suite.createTestEnvelope(models.Envelope{Name: "Groceries", AccountID: account.ID, Allocated: decimal.NewFromInt(500)})
	rent := suite.createTestEnvelope(models.Envelope{Name: "Rent", AccountID: account.ID, Allocated: decimal.NewFromInt(300)})

	r := test.Request(t, http.MethodPost, "/v1/income/preview", map[string]any{
		"accountId": account.ID,
		"amount":    decimal.NewFromInt(1500),
		"strategy":  "proportional",
	})
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var shares map[string]decimal.Decimal
	test.DecodeResponse(t, &r, &shares)

	require.Len(t, shares, 2)
	assert.True(t, shares[groceries.ID.String()].Equal(decimal.NewFromFloat(937.5)))
	assert.True(t, shares[rent.ID.String()].Equal(decimal.NewFromFloat(562.5)))

	// Nothing is persisted by a preview
	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *TestSuiteStandard) TestIncomePreviewFails() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid strategy", map[string]any{"accountId": account.ID, "amount": 100, "strategy": "random"}, http.StatusBadRequest},
		{"Missing strategy", map[string]any{"accountId": account.ID, "amount": 100}, http.StatusBadRequest},
		{"Non-existing account", map[string]any{"accountId": "d07595e6-ad25-4c4b-9751-9a72ae02dbb4", "amount": 100, "strategy": "equal"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/income/preview", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
