package allocation

import (
	"github.com/google/uuid"
	"github.com/moneydash/backend/internal/models"
)

// Result is the outcome of processing one income transaction.
type Result struct {
	// Transactions are the allocation transactions synthesized for the
	// income event. Empty when no distribution was performed.
	Transactions []models.Transaction

	// Strategy is the distribution strategy that was applied.
	Strategy Strategy

	// Warning is set when the envelopes' custom rules were rejected by the
	// validator and the proportional fallback was used instead. It is
	// informational, processing always succeeds.
	Warning error
}

// ProcessIncome distributes an unassigned income transaction across the
// envelopes of its account.
//
// Envelopes with a complete allocation rule take precedence: if their rules
// validate against the income amount, only they receive money, according to
// their rules. If validation fails, or no envelope carries a rule, the
// income is split proportionally to the allocated amounts over all
// envelopes of the account.
//
// The function is free of side effects. The caller appends the returned
// transactions together with the income transaction to the ledger, see
// models.RecordIncome.
func ProcessIncome(transaction models.Transaction, envelopes []models.Envelope) Result {
	if !transaction.IsUnassignedIncome() {
		return Result{}
	}

	var candidates []models.Envelope
	for _, envelope := range envelopes {
		if envelope.AccountID == transaction.AccountID {
			candidates = append(candidates, envelope)
		}
	}

	var ruled []models.Envelope
	var rules []Rule
	for _, envelope := range candidates {
		rule, ok := envelope.Rule()
		if !ok {
			continue
		}

		ruled = append(ruled, envelope)
		rules = append(rules, Rule{EnvelopeID: envelope.ID, Value: rule.Value, Kind: rule.Kind})
	}

	// Proportional distribution over all envelopes of the account is the
	// fallback whenever custom rules are absent or inconsistent.
	strategy := StrategyProportional
	target := candidates
	var warning error

	if len(ruled) > 0 {
		err := ValidateRules(rules, transaction.Amount)
		if err == nil {
			strategy = StrategyCustom
			target = ruled
		} else {
			warning = err
		}
	}

	shares := Distribute(transaction.Amount, target, strategy)

	// Iterate over the envelopes instead of the map to keep the order of
	// the synthesized transactions deterministic.
	var transactions []models.Transaction
	for _, envelope := range target {
		amount, ok := shares[envelope.ID]
		if !ok {
			continue
		}

		envelopeID := envelope.ID
		transactions = append(transactions, models.Transaction{
			DefaultModel: models.DefaultModel{ID: uuid.New()},
			Date:         transaction.Date,
			Amount:       amount,
			Note:         "Income allocation - " + envelope.Name,
			AccountID:    transaction.AccountID,
			EnvelopeID:   &envelopeID,
			Source:       models.SourceAllocation,
		})
	}

	return Result{
		Transactions: transactions,
		Strategy:     strategy,
		Warning:      warning,
	}
}
