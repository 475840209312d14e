package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule assigns imported transactions to an envelope when their note
// matches the glob pattern in Match. Rules are applied in ascending
// priority order, the first match wins.
type MatchRule struct {
	DefaultModel
	Priority   uint
	Match      string   `example:"REWE*"`
	Envelope   Envelope `json:"-"`
	EnvelopeID uuid.UUID
}

func (r *MatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MatchRule)
	return r.checkIntegrity(tx, *toSave)
}

func (r *MatchRule) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(MatchRule)
	if tx.Statement.Changed("EnvelopeID") {
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (r *MatchRule) checkIntegrity(tx *gorm.DB, toSave MatchRule) error {
	return tx.First(&Envelope{}, toSave.EnvelopeID).Error
}

// Returns all match rules on this instance for export
func (MatchRule) Export() (json.RawMessage, error) {
	var matchRules []MatchRule
	err := DB.Unscoped().Where(&MatchRule{}).Find(&matchRules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&matchRules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
