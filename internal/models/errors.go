package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrAccountNameNotUnique  = errors.New("the account name must be unique")
	ErrAccountKindInvalid    = errors.New("the account kind is invalid")
	ErrEnvelopeNameNotUnique = errors.New("the envelope name must be unique for the account")
	ErrAllocationRulePartial = errors.New("an allocation rule needs both a value and a kind")
	ErrAllocationKindInvalid = errors.New("the allocation kind must be percentage or fixed")
	ErrTransactionNoteEmpty  = errors.New("the transaction note must not be empty")
)
