package ledger

import "github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"

// Hasher turns a credential into a salted hash and checks it back.
type Hasher interface {
	Hash(password string) ([]byte, error)
	Compare(hash []byte, password string) bool
}

// Customer owns exactly one account. Name and credential never change.
type Customer struct {
	name    string
	hash    []byte
	hasher  Hasher
	account *Account
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Verify(password string) bool {
	return c.hasher.Compare(c.hash, password)
}

func (c *Customer) Account() *Account {
	return c.account
}

func (c *Customer) Statement() models.Statement {
	balance, history := c.account.snapshot()

	return models.Statement{
		Name:      c.name,
		AccountID: c.account.ID(),
		Balance:   balance,
		History:   history,
	}
}
