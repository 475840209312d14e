package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationKind determines how an allocation rule divides income.
type AllocationKind string

const (
	AllocationPercentage AllocationKind = "percentage" // Value is a percentage of the income
	AllocationFixed      AllocationKind = "fixed"      // Value is a fixed amount
)

// AllocationRule is a complete income allocation rule for an envelope.
//
// It only exists as a whole. The nullable database columns on Envelope are
// never exposed on their own, use Envelope.Rule to read the rule.
type AllocationRule struct {
	Value decimal.Decimal `json:"value" example:"25"`
	Kind  AllocationKind  `json:"kind" example:"percentage"`
}

// Envelope represents a named spending category that money is assigned to.
//
// Spent is a running total maintained by its writers, it is not recomputed
// from the transactions referencing the envelope.
type Envelope struct {
	DefaultModel
	Name      string    `gorm:"uniqueIndex:envelope_account_id_name"`
	Account   Account   `json:"-"`
	AccountID uuid.UUID `gorm:"uniqueIndex:envelope_account_id_name"`
	Note      string
	Allocated decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Budgeted target for the envelope
	Spent     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Color     string
	Archived  bool

	RuleValue decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"`
	RuleKind  AllocationKind
}

// Rule returns the envelope's income allocation rule and whether one is set.
func (e Envelope) Rule() (AllocationRule, bool) {
	if !e.RuleValue.Valid {
		return AllocationRule{}, false
	}

	return AllocationRule{Value: e.RuleValue.Decimal, Kind: e.RuleKind}, true
}

// SetRule sets the income allocation rule for the envelope.
func (e *Envelope) SetRule(rule AllocationRule) {
	e.RuleValue = decimal.NewNullDecimal(rule.Value)
	e.RuleKind = rule.Kind
}

// ClearRule removes the income allocation rule from the envelope.
func (e *Envelope) ClearRule() {
	e.RuleValue = decimal.NullDecimal{}
	e.RuleKind = ""
}

// BeforeSave ensures consistency for the envelope.
//
// The allocation rule columns have to be set together: a value without a
// kind or a kind without a value is rejected.
func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Note = strings.TrimSpace(e.Note)

	if e.RuleValue.Valid != (e.RuleKind != "") {
		return ErrAllocationRulePartial
	}

	if e.RuleKind != "" && e.RuleKind != AllocationPercentage && e.RuleKind != AllocationFixed {
		return ErrAllocationKindInvalid
	}

	return nil
}

func (e *Envelope) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Envelope)
	return e.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the envelope before
// committing an update to the database.
func (e *Envelope) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Envelope)
	if tx.Statement.Changed("AccountID") {
		return e.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (e *Envelope) checkIntegrity(tx *gorm.DB, toSave Envelope) error {
	return tx.First(&Account{}, toSave.AccountID).Error
}

// Returns all envelopes on this instance for export
func (Envelope) Export() (json.RawMessage, error) {
	var envelopes []Envelope
	err := DB.Unscoped().Where(&Envelope{}).Find(&envelopes).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&envelopes)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
