package importer

import (
	"github.com/moneydash/backend/internal/allocation"
	"github.com/moneydash/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Match applies the match rules to a transaction preview.
//
// Rules are expected in priority order. The first rule whose glob pattern
// matches the transaction note assigns its envelope.
func Match(preview *TransactionPreview, rules []models.MatchRule) {
	for _, rule := range rules {
		if glob.Glob(rule.Match, preview.Transaction.Note) {
			envelopeID := rule.EnvelopeID
			preview.Transaction.EnvelopeID = &envelopeID
			preview.MatchRuleID = rule.ID
			return
		}
	}
}

// Create persists the previewed transactions for the account in one
// database transaction.
//
// Statement categories are resolved to envelopes by name where no match
// rule assigned one already. Income rows that remain unassigned run
// through the allocation engine, their allocation transactions are created
// in the same database transaction.
func Create(db *gorm.DB, account models.Account, previews []TransactionPreview) ([]models.Transaction, error) {
	envelopes, err := account.Envelopes(db)
	if err != nil {
		return nil, err
	}

	var created []models.Transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, preview := range previews {
			transaction := preview.Transaction
			transaction.AccountID = account.ID
			transaction.Source = models.SourceImport

			if transaction.EnvelopeID == nil && preview.Category != "" {
				idx := slices.IndexFunc(envelopes, func(e models.Envelope) bool { return e.Name == preview.Category })
				if idx != -1 {
					envelopeID := envelopes[idx].ID
					transaction.EnvelopeID = &envelopeID
				}
			}

			err := tx.Create(&transaction).Error
			if err != nil {
				return err
			}
			created = append(created, transaction)

			result := allocation.ProcessIncome(transaction, envelopes)
			for i := range result.Transactions {
				err := tx.Create(&result.Transactions[i]).Error
				if err != nil {
					return err
				}
			}
			created = append(created, result.Transactions...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
