package models

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Statement is a read-only view of a customer's account.
type Statement struct {
	Name      string          `json:"name"`
	AccountID int64           `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	History   []Transaction   `json:"history"`
}

func (s Statement) Format(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Customer Name: %s\nAccount Number: %d\nBalance: $%s\n",
		s.Name, s.AccountID, s.Balance.StringFixed(2)); err != nil {
		return err
	}

	for _, tx := range s.History {
		if _, err := fmt.Fprintf(w, "- %s: $%s\n", tx.Kind, tx.Amount.StringFixed(2)); err != nil {
			return err
		}
	}

	return nil
}
