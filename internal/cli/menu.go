// Package cli is the interactive text menu in front of the ledger.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
	"github.com/IlyasAtabaev731/retail-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

type Bank interface {
	CreateCustomer(ctx context.Context, name, password string) (int64, error)
	Deposit(ctx context.Context, name string, amount decimal.Decimal, password string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, name string, amount decimal.Decimal, password string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, password, to string, amount decimal.Decimal) (decimal.Decimal, error)
	View(ctx context.Context, name, password string) (models.Statement, error)
}

const (
	msgCreated       = "Customer created successfully."
	msgExists        = "Customer already exists."
	msgLimit         = "Customer limit reached."
	msgEmpty         = "Name and password must not be empty."
	msgUnauthorized  = "Customer not found or incorrect password."
	msgBadDeposit    = "Invalid deposit amount."
	msgBadWithdraw   = "Invalid or insufficient funds."
	msgBadTransfer   = "Invalid or insufficient funds for transfer."
	msgNoReceiver    = "Receiver not found."
	msgSameAccount   = "Cannot transfer to the same account."
	msgHistoryFull   = "Transaction history is full."
	msgInvalidOption = "Invalid option. Try again."
	msgGoodbye       = "Thank you for using the banking system."
)

var errEndOfInput = errors.New("end of input")

type Menu struct {
	bank Bank
	in   *bufio.Scanner
	out  io.Writer
}

func New(bank Bank, in io.Reader, out io.Writer) *Menu {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &Menu{bank: bank, in: scanner, out: out}
}

// Run loops until the operator picks 0 or the input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, err := m.read("Choose an option: ")
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case "1":
			err = m.createCustomer(ctx)
		case "2":
			err = m.deposit(ctx)
		case "3":
			err = m.withdraw(ctx)
		case "4":
			err = m.transfer(ctx)
		case "5":
			err = m.view(ctx)
		case "0":
			m.println(msgGoodbye)
			return nil
		default:
			m.println(msgInvalidOption)
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, "\n--- Banking System Menu ---\n"+
		"1. Create Customer\n"+
		"2. Deposit\n"+
		"3. Withdraw\n"+
		"4. Transfer\n"+
		"5. View Account Info\n"+
		"0. Exit\n")
}

func (m *Menu) createCustomer(ctx context.Context) error {
	name, pw, err := m.credentials("Enter customer name: ", "Enter password: ")
	if err != nil {
		return err
	}

	_, err = m.bank.CreateCustomer(ctx, name, pw)
	switch {
	case err == nil:
		m.println(msgCreated)
	case errors.Is(err, ledger.ErrCustomerExists):
		m.println(msgExists)
	case errors.Is(err, ledger.ErrCustomerLimit):
		m.println(msgLimit)
	case errors.Is(err, ledger.ErrInvalidCustomer):
		m.println(msgEmpty)
	default:
		m.println("Error: " + err.Error())
	}
	return nil
}

func (m *Menu) deposit(ctx context.Context) error {
	name, pw, err := m.credentials("Enter customer name: ", "Enter password: ")
	if err != nil {
		return err
	}
	amount, ok, err := m.amount("Enter deposit amount: ")
	if err != nil {
		return err
	}
	if !ok {
		m.println(msgBadDeposit)
		return nil
	}

	balance, err := m.bank.Deposit(ctx, name, amount, pw)
	if err != nil {
		m.report(err, msgBadDeposit)
		return nil
	}
	m.println("Deposit successful. Balance: $" + balance.StringFixed(2))
	return nil
}

func (m *Menu) withdraw(ctx context.Context) error {
	name, pw, err := m.credentials("Enter customer name: ", "Enter password: ")
	if err != nil {
		return err
	}
	amount, ok, err := m.amount("Enter withdrawal amount: ")
	if err != nil {
		return err
	}
	if !ok {
		m.println(msgBadWithdraw)
		return nil
	}

	balance, err := m.bank.Withdraw(ctx, name, amount, pw)
	if err != nil {
		m.report(err, msgBadWithdraw)
		return nil
	}
	m.println("Withdrawal successful. Balance: $" + balance.StringFixed(2))
	return nil
}

func (m *Menu) transfer(ctx context.Context) error {
	from, pw, err := m.credentials("Enter sender name: ", "Enter sender password: ")
	if err != nil {
		return err
	}
	to, err := m.read("Enter receiver name: ")
	if err != nil {
		return err
	}
	amount, ok, err := m.amount("Enter transfer amount: ")
	if err != nil {
		return err
	}
	if !ok {
		m.println(msgBadTransfer)
		return nil
	}

	balance, err := m.bank.Transfer(ctx, from, pw, to, amount)
	if err != nil {
		m.report(err, msgBadTransfer)
		return nil
	}
	m.println("Transfer successful. Balance: $" + balance.StringFixed(2))
	return nil
}

func (m *Menu) view(ctx context.Context) error {
	name, pw, err := m.credentials("Enter customer name: ", "Enter password: ")
	if err != nil {
		return err
	}

	statement, err := m.bank.View(ctx, name, pw)
	if err != nil {
		m.report(err, msgUnauthorized)
		return nil
	}
	return statement.Format(m.out)
}

// report prints the message for a rejected operation; amountMsg covers
// the amount and balance rejections of that operation.
func (m *Menu) report(err error, amountMsg string) {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		m.println(msgUnauthorized)
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInsufficientFunds):
		m.println(amountMsg)
	case errors.Is(err, ledger.ErrCustomerNotFound):
		m.println(msgNoReceiver)
	case errors.Is(err, ledger.ErrSameAccount):
		m.println(msgSameAccount)
	case errors.Is(err, ledger.ErrHistoryFull):
		m.println(msgHistoryFull)
	default:
		m.println("Error: " + err.Error())
	}
}

func (m *Menu) credentials(namePrompt, pwPrompt string) (string, string, error) {
	name, err := m.read(namePrompt)
	if err != nil {
		return "", "", err
	}
	pw, err := m.read(pwPrompt)
	if err != nil {
		return "", "", err
	}
	return name, pw, nil
}

// amount reads one token; ok is false when it is not a number.
func (m *Menu) amount(prompt string) (decimal.Decimal, bool, error) {
	token, err := m.read(prompt)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

func (m *Menu) read(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errEndOfInput
	}
	return m.in.Text(), nil
}

func (m *Menu) println(msg string) {
	fmt.Fprintln(m.out, msg)
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		m.println("")
		return nil
	}
	return err
}
