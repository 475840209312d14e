package v1_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/moneydash/backend/internal/importer"
	"github.com/moneydash/backend/internal/models"
	"github.com/moneydash/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statement builds the request body and headers for a statement upload.
func statement(t *testing.T, filename, content string) (*bytes.Buffer, map[string]string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

const testStatement = "Date,Note,Outflow,Inflow,Category\n" +
	"2024-03-01,Paycheck March,,1500,\n" +
	"2024-03-02,REWE Superstore,54.21,,Groceries\n"

func (suite *TestSuiteStandard) TestImportPreview() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})
	envelope := suite.createTestEnvelope(models.Envelope{Name: "Groceries", AccountID: account.ID, Allocated: decimal.NewFromInt(500)})
	matchRule := suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "REWE*", EnvelopeID: envelope.ID})

	body, headers := statement(t, "statement.csv", testStatement)
	r := test.Request(t, http.MethodPost, fmt.Sprintf("/v1/import/preview?accountId=%s", account.ID), body, headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var previews []importer.TransactionPreview
	test.DecodeResponse(t, &r, &previews)
	require.Len(t, previews, 2)

	assert.Empty(t, previews[0].DuplicateTransactionIDs)
	assert.Nil(t, previews[0].Transaction.EnvelopeID)

	// The match rule wins over the statement category
	require.NotNil(t, previews[1].Transaction.EnvelopeID)
	assert.Equal(t, envelope.ID, *previews[1].Transaction.EnvelopeID)
	assert.Equal(t, matchRule.ID, previews[1].MatchRuleID)
	assert.Equal(t, "Groceries", previews[1].Category)

	// A preview persists nothing
	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *TestSuiteStandard) TestImport() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})
	_ = suite.createTestEnvelope(models.Envelope{Name: "Groceries", AccountID: account.ID, Allocated: decimal.NewFromInt(500)})

	body, headers := statement(t, "statement.csv", testStatement)
	r := test.Request(t, http.MethodPost, fmt.Sprintf("/v1/import?accountId=%s", account.ID), body, headers)
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	// The income, its allocation transaction and the expense
	var transactions []models.Transaction
	test.DecodeResponse(t, &r, &transactions)
	assert.Len(t, transactions, 3)

	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(3), count)

	// Importing the same statement again flags every row as duplicate
	body, headers = statement(t, "statement.csv", testStatement)
	r = test.Request(t, http.MethodPost, fmt.Sprintf("/v1/import/preview?accountId=%s", account.ID), body, headers)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var previews []importer.TransactionPreview
	test.DecodeResponse(t, &r, &previews)
	require.Len(t, previews, 2)
	assert.Len(t, previews[0].DuplicateTransactionIDs, 1)
	assert.Len(t, previews[1].DuplicateTransactionIDs, 1)
}

func (suite *TestSuiteStandard) TestImportFails() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name     string
		query    string
		filename string
		content  string
		status   int
	}{
		{"No account", "", "statement.csv", testStatement, http.StatusBadRequest},
		{"Non-existing account", "?accountId=d07595e6-ad25-4c4b-9751-9a72ae02dbb4", "statement.csv", testStatement, http.StatusNotFound},
		{"Wrong file suffix", fmt.Sprintf("?accountId=%s", account.ID), "statement.pdf", testStatement, http.StatusBadRequest},
		{"Broken CSV", fmt.Sprintf("?accountId=%s", account.ID), "statement.csv", "Date,Note,Outflow,Inflow\nnot-a-date,Note,10,\n", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := statement(t, tt.filename, tt.content)

			r := test.Request(t, http.MethodPost, fmt.Sprintf("/v1/import%s", tt.query), body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestImportNoFile() {
	t := suite.T()

	account := suite.createTestAccount(models.Account{})

	r := test.Request(t, http.MethodPost, fmt.Sprintf("/v1/import?accountId=%s", account.ID), "")
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}
