// Package allocation implements the income allocation engine: it decides
// how an incoming income transaction is distributed across the envelopes
// of an account.
package allocation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moneydash/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Strategy is the algorithm used to split an income amount across envelopes.
type Strategy string

const (
	// StrategyEqual gives every envelope the same share.
	StrategyEqual Strategy = "equal"
	// StrategyProportional splits in proportion to the allocated amounts.
	StrategyProportional Strategy = "proportional"
	// StrategyCustom follows the envelopes' own allocation rules.
	StrategyCustom Strategy = "custom"
)

// Strategies returns all valid distribution strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyEqual, StrategyProportional, StrategyCustom}
}

// Rule is one envelope's allocation rule as checked by the validator.
type Rule struct {
	EnvelopeID uuid.UUID
	Value      decimal.Decimal
	Kind       models.AllocationKind
}

var (
	ErrConflictingKinds     = errors.New("conflicting allocation types: fixed and percentage rules cannot be combined")
	ErrFixedSumMismatch     = errors.New("fixed allocations do not sum to the total income")
	ErrPercentageOutOfRange = errors.New("percentage allocations must sum to a value between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// ValidateRules checks a set of allocation rules for internal consistency
// against the income amount they will be applied to.
//
// An empty rule set is valid, deciding whether to distribute at all is the
// caller's job.
func ValidateRules(rules []Rule, total decimal.Decimal) error {
	if len(rules) == 0 {
		return nil
	}

	var fixed, percentage int
	sum := decimal.Zero
	for _, rule := range rules {
		switch rule.Kind {
		case models.AllocationFixed:
			fixed++
		case models.AllocationPercentage:
			percentage++
		}

		sum = sum.Add(rule.Value)
	}

	if fixed > 0 && percentage > 0 {
		return ErrConflictingKinds
	}

	if fixed > 0 {
		// Exact equality, not a tolerance check
		if !sum.Equal(total) {
			return fmt.Errorf("%w: rules sum to %s, income is %s", ErrFixedSumMismatch, sum, total)
		}

		return nil
	}

	if sum.IsNegative() || sum.GreaterThan(hundred) {
		return fmt.Errorf("%w: rules sum to %s", ErrPercentageOutOfRange, sum)
	}

	return nil
}

// Distribute computes the per-envelope share of total under the strategy.
//
// Envelopes that would receive zero or less are left out of the result so
// that they never produce transactions downstream. When there is nothing
// to distribute to (no envelopes, or no proportional basis), the result is
// empty: callers must treat this as "no distribution performed".
func Distribute(total decimal.Decimal, envelopes []models.Envelope, strategy Strategy) map[uuid.UUID]decimal.Decimal {
	shares := make(map[uuid.UUID]decimal.Decimal)

	switch strategy {
	case StrategyEqual:
		if len(envelopes) == 0 {
			return shares
		}

		share := total.Div(decimal.NewFromInt(int64(len(envelopes))))
		for _, envelope := range envelopes {
			addShare(shares, envelope.ID, share)
		}

	case StrategyProportional:
		basis := decimal.Zero
		for _, envelope := range envelopes {
			basis = basis.Add(envelope.Allocated)
		}

		// No allocated amounts means no proportional basis. Returning an
		// empty map here also keeps the division below well-defined.
		if basis.IsZero() {
			return shares
		}

		for _, envelope := range envelopes {
			addShare(shares, envelope.ID, total.Mul(envelope.Allocated).Div(basis))
		}

	case StrategyCustom:
		for _, envelope := range envelopes {
			rule, ok := envelope.Rule()
			if !ok {
				continue
			}

			var amount decimal.Decimal
			switch rule.Kind {
			case models.AllocationPercentage:
				amount = total.Mul(rule.Value).Div(hundred)
			case models.AllocationFixed:
				// A single fixed rule is capped at the available total. This
				// caps per envelope independently and does not guarantee that
				// the sum over all envelopes fits within the total, that is
				// what ValidateRules is for.
				amount = decimal.Min(rule.Value, total)
			}

			addShare(shares, envelope.ID, amount)
		}
	}

	return shares
}

// addShare stores a share, dropping amounts of zero or less.
func addShare(shares map[uuid.UUID]decimal.Decimal, id uuid.UUID, amount decimal.Decimal) {
	if amount.IsPositive() {
		shares[id] = amount
	}
}
