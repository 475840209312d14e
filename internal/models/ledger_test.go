package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneydash/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRecordIncome() {
	account := suite.createTestAccount(models.Account{})
	groceries := suite.createTestEnvelope(models.Envelope{AccountID: account.ID})
	rent := suite.createTestEnvelope(models.Envelope{AccountID: account.ID})

	income := models.Transaction{
		Note:      "Salary",
		Amount:    decimal.NewFromInt(1500),
		AccountID: account.ID,
		Source:    models.SourcePaycheck,
	}

	groceriesID := groceries.ID
	rentID := rent.ID
	allocations := []models.Transaction{
		{
			DefaultModel: models.DefaultModel{ID: uuid.New()},
			Note:         "Income allocation - Groceries",
			Amount:       decimal.NewFromFloat(937.5),
			AccountID:    account.ID,
			EnvelopeID:   &groceriesID,
			Source:       models.SourceAllocation,
		},
		{
			DefaultModel: models.DefaultModel{ID: uuid.New()},
			Note:         "Income allocation - Rent",
			Amount:       decimal.NewFromFloat(562.5),
			AccountID:    account.ID,
			EnvelopeID:   &rentID,
			Source:       models.SourceAllocation,
		},
	}

	err := models.RecordIncome(models.DB, &income, allocations)
	require.NoError(suite.T(), err)

	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *TestSuiteStandard) TestRecordIncomeAtomic() {
	account := suite.createTestAccount(models.Account{})
	envelope := suite.createTestEnvelope(models.Envelope{AccountID: account.ID})

	income := models.Transaction{
		Note:      "Salary",
		Amount:    decimal.NewFromInt(1500),
		AccountID: account.ID,
	}

	// The empty note makes the allocation fail, which must roll back the
	// income transaction as well
	envelopeID := envelope.ID
	allocations := []models.Transaction{
		{
			Amount:     decimal.NewFromInt(1500),
			AccountID:  account.ID,
			EnvelopeID: &envelopeID,
			Source:     models.SourceAllocation,
		},
	}

	err := models.RecordIncome(models.DB, &income, allocations)
	require.ErrorIs(suite.T(), err, models.ErrTransactionNoteEmpty)

	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "no transaction of a failed income event may be persisted")
}

func (suite *TestSuiteStandard) TestRecentTransactions() {
	account := suite.createTestAccount(models.Account{})

	// Create with explicit timestamps so that the ordering is
	// deterministic
	for i, note := range []string{"oldest", "middle", "newest"} {
		transaction := models.Transaction{
			Note:      note,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			AccountID: account.ID,
		}
		transaction.CreatedAt = time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC)
		_ = suite.createTestTransaction(transaction)
	}

	transactions, err := models.RecentTransactions(models.DB, 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), transactions, 2)
	assert.Equal(suite.T(), "newest", transactions[0].Note)
	assert.Equal(suite.T(), "middle", transactions[1].Note)

	transactions, err = models.RecentTransactions(models.DB, 0)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), transactions, 3)
}

func (suite *TestSuiteStandard) TestRecentTransactionsFiltered() {
	account := suite.createTestAccount(models.Account{})
	other := suite.createTestAccount(models.Account{})

	for i, note := range []string{"oldest", "newest"} {
		transaction := models.Transaction{
			Note:      note,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			AccountID: account.ID,
		}
		transaction.CreatedAt = time.Date(2024, 2, i+1, 0, 0, 0, 0, time.UTC)
		_ = suite.createTestTransaction(transaction)
	}
	_ = suite.createTestTransaction(models.Transaction{
		Note:      "Other account",
		Amount:    decimal.NewFromInt(-10),
		AccountID: other.ID,
	})

	// Conditions on the query passed in are preserved
	q := models.DB.Where(&models.Transaction{AccountID: account.ID})
	transactions, err := models.RecentTransactions(q, 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), transactions, 2)
	assert.Equal(suite.T(), "newest", transactions[0].Note)
	assert.Equal(suite.T(), "oldest", transactions[1].Note)
}

func (suite *TestSuiteStandard) TestAccountActivity() {
	account := suite.createTestAccount(models.Account{})
	envelope := suite.createTestEnvelope(models.Envelope{AccountID: account.ID})
	envelopeID := envelope.ID

	_ = suite.createTestTransaction(models.Transaction{
		Note:       "Allocation",
		Amount:     decimal.NewFromInt(100),
		AccountID:  account.ID,
		EnvelopeID: &envelopeID,
	})
	_ = suite.createTestTransaction(models.Transaction{
		Note:       "Groceries",
		Amount:     decimal.NewFromInt(-40),
		AccountID:  account.ID,
		EnvelopeID: &envelopeID,
	})

	activity, err := account.Activity(models.DB)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), activity, 1)

	assert.True(suite.T(), activity[0].Incoming.Equal(decimal.NewFromInt(100)), "incoming is %s, should be 100", activity[0].Incoming)
	assert.True(suite.T(), activity[0].Outgoing.Equal(decimal.NewFromInt(40)), "outgoing is %s, should be 40", activity[0].Outgoing)
}

func (suite *TestSuiteStandard) TestMatchRules() {
	account := suite.createTestAccount(models.Account{})
	envelope := suite.createTestEnvelope(models.Envelope{AccountID: account.ID})

	_ = suite.createTestMatchRule(models.MatchRule{Priority: 2, Match: "Edeka*", EnvelopeID: envelope.ID})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "REWE*", EnvelopeID: envelope.ID})

	rules, err := models.MatchRules(models.DB)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), rules, 2)
	assert.Equal(suite.T(), "REWE*", rules[0].Match)
	assert.Equal(suite.T(), "Edeka*", rules[1].Match)
}

func (suite *TestSuiteStandard) TestDuplicateTransactionIDs() {
	account := suite.createTestAccount(models.Account{})

	transaction := suite.createTestTransaction(models.Transaction{
		Note:       "Imported",
		Amount:     decimal.NewFromInt(-10),
		AccountID:  account.ID,
		ImportHash: "0c74f13f74d72d1c0f0e1dcbc9b532b73c9f7b0e5a9c0a32b1a2f6b0a4b3c2d1",
	})

	ids, err := models.DuplicateTransactionIDs(models.DB, transaction.ImportHash)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []uuid.UUID{transaction.ID}, ids)

	ids, err = models.DuplicateTransactionIDs(models.DB, "")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), ids)
}
