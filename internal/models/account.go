package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// AccountKind is the type of a financial account.
type AccountKind string

const (
	AccountKindChecking   AccountKind = "checking"
	AccountKindSavings    AccountKind = "savings"
	AccountKindCreditCard AccountKind = "creditCard"
	AccountKindMortgage   AccountKind = "mortgage"
	AccountKindInvestment AccountKind = "investment"
	AccountKindLoan       AccountKind = "loan"
)

// Kinds returns all valid account kinds.
func Kinds() []AccountKind {
	return []AccountKind{
		AccountKindChecking,
		AccountKindSavings,
		AccountKindCreditCard,
		AccountKindMortgage,
		AccountKindInvestment,
		AccountKindLoan,
	}
}

// Account represents a financial account, e.g. a bank account.
//
// The balance is informational and set by the user, it is not recomputed
// from the account's transactions.
type Account struct {
	DefaultModel
	Name           string      `gorm:"uniqueIndex:account_name"`
	Kind           AccountKind `example:"checking"`
	Note           string
	Balance        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Institution    string
	AccountNumber  string // Only the masked form, e.g. "****1234"
	Color          string
	Currency       string              // Currency symbol for display, derived from Locale
	Locale         string              // BCP 47 tag, e.g. "de-DE"
	PaycheckAmount decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Default amount for paycheck entry
	Archived       bool
}

// BeforeSave ensures consistency for the account.
//
// It verifies the account kind, trims whitespace from all strings and
// derives the display currency symbol from the locale.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	a.Institution = strings.TrimSpace(a.Institution)
	a.AccountNumber = strings.TrimSpace(a.AccountNumber)

	if a.Kind == "" {
		a.Kind = AccountKindChecking
	}

	valid := false
	for _, kind := range Kinds() {
		if a.Kind == kind {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: %s", ErrAccountKindInvalid, a.Kind)
	}

	if a.Locale != "" {
		tag, err := language.Parse(a.Locale)
		if err != nil {
			return fmt.Errorf("the locale could not be parsed: %w", err)
		}

		cur, _ := currency.FromTag(tag)
		a.Currency = fmt.Sprintf("%s", currency.Symbol(cur))
	}

	return nil
}

// Envelopes returns all envelopes for this account.
func (a Account) Envelopes(db *gorm.DB) ([]Envelope, error) {
	var envelopes []Envelope
	err := db.Where(&Envelope{AccountID: a.ID}).Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	return envelopes, nil
}

// Returns all accounts on this instance for export
func (Account) Export() (json.RawMessage, error) {
	var accounts []Account
	err := DB.Unscoped().Where(&Account{}).Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&accounts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
