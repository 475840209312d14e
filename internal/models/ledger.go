package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordIncome appends an income transaction together with its allocation
// transactions in one database transaction. Either all of them become
// visible or none, an income event is never persisted partially.
func RecordIncome(db *gorm.DB, income *Transaction, allocations []Transaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(income).Error
		if err != nil {
			return err
		}

		for i := range allocations {
			err := tx.Create(&allocations[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// RecentTransactions returns transactions in reverse insertion order, newest
// first. A limit of 0 returns all transactions. The query passed in may
// already carry conditions, they are preserved.
func RecentTransactions(db *gorm.DB, limit int) ([]Transaction, error) {
	var transactions []Transaction

	query := db.Order("datetime(transactions.created_at) DESC, transactions.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// EnvelopeActivity is the aggregate of an envelope's transactions for the
// dashboard. The sums are computed at read time and never written back to
// the envelope, Envelope.Spent stays externally maintained.
type EnvelopeActivity struct {
	Envelope Envelope
	Incoming decimal.Decimal // Sum of income and allocations into the envelope
	Outgoing decimal.Decimal // Sum of expenses charged to the envelope
}

// Activity calculates the transaction aggregates for all envelopes of the
// account.
func (a Account) Activity(db *gorm.DB) ([]EnvelopeActivity, error) {
	envelopes, err := a.Envelopes(db)
	if err != nil {
		return nil, err
	}

	activity := make([]EnvelopeActivity, 0, len(envelopes))
	for _, envelope := range envelopes {
		var transactions []Transaction
		id := envelope.ID
		err := db.Where(Transaction{EnvelopeID: &id}).Find(&transactions).Error
		if err != nil {
			return nil, err
		}

		entry := EnvelopeActivity{Envelope: envelope}
		for _, t := range transactions {
			if t.Amount.IsPositive() {
				entry.Incoming = entry.Incoming.Add(t.Amount)
			} else {
				entry.Outgoing = entry.Outgoing.Sub(t.Amount)
			}
		}

		activity = append(activity, entry)
	}

	return activity, nil
}

// MatchRules returns all match rules in ascending priority order.
func MatchRules(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// DuplicateTransactionIDs returns the IDs of transactions that carry the
// same import hash as the one passed.
func DuplicateTransactionIDs(db *gorm.DB, importHash string) ([]uuid.UUID, error) {
	if importHash == "" {
		return []uuid.UUID{}, nil
	}

	var duplicates []Transaction
	err := db.Where(Transaction{ImportHash: importHash}).Find(&duplicates).Error
	if err != nil {
		return nil, err
	}

	// When there are no duplicates, we want an empty list, not null
	ids := make([]uuid.UUID, 0, len(duplicates))
	for _, duplicate := range duplicates {
		ids = append(ids, duplicate.ID)
	}

	return ids, nil
}
