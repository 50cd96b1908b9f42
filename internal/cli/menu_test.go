package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/IlyasAtabaev731/retail-ledger/internal/config"
	"github.com/IlyasAtabaev731/retail-ledger/internal/ledger"
	"github.com/IlyasAtabaev731/retail-ledger/internal/lib/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func run(t *testing.T, script string) string {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := ledger.New(log, config.Ledger{AccountIDBase: 1001, MaxCustomers: 50, HistoryLimit: 100},
		password.NewBcrypt(bcrypt.MinCost), nil)

	var out bytes.Buffer
	require.NoError(t, New(l, strings.NewReader(script), &out).Run(context.Background()))
	return out.String()
}

func TestMenuEndToEnd(t *testing.T) {
	out := run(t, `
1 Alice pw1
1 Bob pw2
2 Alice pw1 100
4 Alice pw1 Bob 40
5 Alice pw1
5 Alice wrongpw
0
`)

	assert.Equal(t, 2, strings.Count(out, msgCreated))
	assert.Contains(t, out, "Deposit successful. Balance: $100.00")
	assert.Contains(t, out, "Transfer successful. Balance: $60.00")
	assert.Contains(t, out, "Customer Name: Alice\nAccount Number: 1001\nBalance: $60.00\n- Deposit: $100.00\n- Transfer Out: $40.00\n")
	assert.Contains(t, out, msgUnauthorized)
	assert.True(t, strings.HasSuffix(out, msgGoodbye+"\n"))
}

func TestMenuRejections(t *testing.T) {
	out := run(t, `
1 Alice pw1
1 Alice pw9
2 Alice pw1 0
2 Alice pw1 abc
3 Alice pw1 5
4 Alice pw1 Carol 5
4 Alice pw1 Alice 5
2 Alice nope 5
9
0
`)

	assert.Contains(t, out, msgExists)
	assert.Equal(t, 2, strings.Count(out, msgBadDeposit))
	assert.Contains(t, out, msgBadWithdraw)
	assert.Contains(t, out, msgNoReceiver)
	assert.Contains(t, out, msgSameAccount)
	assert.Contains(t, out, msgUnauthorized)
	assert.Contains(t, out, msgInvalidOption)
}

func TestMenuStopsAtEndOfInput(t *testing.T) {
	out := run(t, "1 Alice")

	assert.Contains(t, out, "Enter password: ")
	assert.NotContains(t, out, msgGoodbye)
}
