// Package importer turns parsed bank statements into ledger transactions.
package importer

import (
	"github.com/google/uuid"
	"github.com/moneydash/backend/internal/models"
)

// TransactionPreview is used to preview transactions that will be imported
// to allow for editing.
type TransactionPreview struct {
	Transaction             models.Transaction `json:"transaction"`
	Category                string             `json:"category" example:"Groceries"`                               // Name of the category from the statement, matched to an envelope on import
	DuplicateTransactionIDs []uuid.UUID        `json:"duplicateTransactionIds"`                                    // IDs of transactions that this transaction duplicates
	MatchRuleID             uuid.UUID          `json:"matchRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"` // ID of the match rule that was applied to this transaction preview
}
