// Package bankcsv parses generic bank statement CSV exports.
//
// The expected format is a header line followed by records with the
// columns Date, Note, Outflow, Inflow and an optional Category:
//
//	Date,Note,Outflow,Inflow,Category
//	2024-03-01,Paycheck March,,1500,
//	2024-03-02,REWE Superstore,54.21,,Groceries
package bankcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moneydash/backend/internal/importer"
	"github.com/moneydash/backend/internal/importer/helpers"
	"github.com/moneydash/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Column indices of the CSV format.
const (
	Date = iota
	Note
	Outflow
	Inflow
	Category
)

// Parse reads statement records for the account from the CSV file.
func Parse(f io.Reader, account models.Account) ([]importer.TransactionPreview, error) {
	reader := csv.NewReader(f)

	// The Category column is optional
	reader.FieldsPerRecord = -1

	var transactions []importer.TransactionPreview

	// Skip the header line
	_, err := reader.Read()
	if err == io.EOF {
		return []importer.TransactionPreview{}, nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		if len(record) <= Inflow {
			return csvReadError(reader, errors.New("the line has too few columns"))
		}

		date, err := time.Parse("2006-01-02", record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse date: %w", err))
		}

		t := importer.TransactionPreview{
			Transaction: models.Transaction{
				Date:       date,
				Note:       record[Note],
				AccountID:  account.ID,
				Source:     models.SourceImport,
				ImportHash: helpers.Sha256String(strings.Join(record, ",")),
			},
		}

		if len(record) > Category {
			t.Category = strings.TrimSpace(record[Category])
		}

		// Set the amount from the outflow or inflow column
		if record[Outflow] != "" && record[Inflow] != "" {
			return csvReadError(reader, errors.New("both outflow and inflow are set for the transaction"))
		} else if record[Outflow] == "" && record[Inflow] == "" {
			return csvReadError(reader, errors.New("no amount is set for the transaction"))
		} else if record[Outflow] != "" {
			amount, err := decimal.NewFromString(record[Outflow])
			if err != nil {
				return csvReadError(reader, errors.New("outflow could not be parsed to a decimal"))
			}

			t.Transaction.Amount = amount.Neg()
		} else {
			amount, err := decimal.NewFromString(record[Inflow])
			if err != nil {
				return csvReadError(reader, errors.New("inflow could not be parsed to a decimal"))
			}

			t.Transaction.Amount = amount
		}

		if t.Transaction.Amount.IsZero() {
			return csvReadError(reader, errors.New("the amount for a transaction must not be 0"))
		}

		transactions = append(transactions, t)
	}

	return transactions, nil
}

// csvReadError returns an error including the line of the input
// the error occurred in.
func csvReadError(r *csv.Reader, err error) ([]importer.TransactionPreview, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []importer.TransactionPreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
