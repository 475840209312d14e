package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionSource states how a transaction came into existence.
type TransactionSource string

const (
	SourceManual     TransactionSource = "manual"
	SourceImport     TransactionSource = "import"
	SourcePaycheck   TransactionSource = "paycheck"
	SourceAllocation TransactionSource = "allocation" // Created by the income allocation engine
)

// Transaction represents money entering or leaving an account.
//
// Negative amounts are expenses, positive amounts are income. A transaction
// without an envelope is unassigned; unassigned income is picked up by the
// income allocation engine.
type Transaction struct {
	DefaultModel
	Date       time.Time
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)" example:"1500"`
	Note       string
	Account    Account    `json:"-"`
	AccountID  uuid.UUID  `example:"d07595e6-ad25-4c4b-9751-9a72ae02dbb4"`
	Envelope   *Envelope  `json:"-"`
	EnvelopeID *uuid.UUID `example:"5e1b451b-9706-436f-9e6d-33b66d25ff9e"`
	Source     TransactionSource
	ImportHash string // A SHA256 hash of a unique combination of values to use in duplicate detection for imports
}

// IsUnassignedIncome reports whether the transaction is income that has not
// been assigned to an envelope yet.
func (t Transaction) IsUnassignedIncome() bool {
	return t.Amount.IsPositive() && t.EnvelopeID == nil
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone of the Date to UTC and verifies the note.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Note = strings.TrimSpace(t.Note)
	if t.Note == "" {
		return ErrTransactionNoteEmpty
	}

	if t.Source == "" {
		t.Source = SourceManual
	}

	t.ImportHash = strings.TrimSpace(t.ImportHash)

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Transaction)
	if tx.Statement.Changed("AccountID") || tx.Statement.Changed("EnvelopeID") {
		return t.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&Account{}, toSave.AccountID).Error
	if err != nil {
		return err
	}

	if toSave.EnvelopeID != nil {
		return tx.First(&Envelope{}, toSave.EnvelopeID).Error
	}

	return nil
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
