package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usersJSON = `{"Users": [
		{"ID": "u1", "Name": "Ayşe", "Surname": "Yılmaz", "Email": "ayse@example.com"}
	]}`
	cardsJSON = `{"UserCreditCards": [
		{"UserID": "u1", "AssignNo": "c1", "CardName": "Gold", "Limit": 1000, "AvailableLimit": 250}
	]}`
	transactionsJSON = `{"CreditCardTransactions": {
		"c1": [
			{"AssignNo": "c1", "Amount": 42.5, "DebtOrCredit": "B", "Date": "2024-01-10", "MerchantCategoryCode": "5411", "TransactionId": "t1"}
		]
	}}`
)

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestLocalSourceLoad(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		UsersFile:        usersJSON,
		CreditCardsFile:  cardsJSON,
		TransactionsFile: transactionsJSON,
	})

	source := NewLocalSource(dir)
	data, err := source.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Users, 1)
	assert.Equal(t, "u1", data.Users[0].ID)
	assert.Equal(t, "Ayşe Yılmaz", data.Users[0].FullName())

	require.Len(t, data.CreditCards, 1)
	assert.Equal(t, "c1", data.CreditCards[0].AssignNo)
	assert.InDelta(t, 750, data.CreditCards[0].CurrentBalance(), 1e-9)

	require.Len(t, data.Transactions["c1"], 1)
	txn := data.Transactions["c1"][0]
	assert.Equal(t, "t1", txn.TransactionID)
	assert.InDelta(t, 42.5, txn.Amount, 1e-9)
}

func TestLocalSourceLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "missing transactions file",
			files: map[string]string{
				UsersFile:       usersJSON,
				CreditCardsFile: cardsJSON,
			},
			wantErr: "transactions.json",
		},
		{
			name: "malformed users file",
			files: map[string]string{
				UsersFile:        `{"Users": [`,
				CreditCardsFile:  cardsJSON,
				TransactionsFile: transactionsJSON,
			},
			wantErr: "failed to decode users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewLocalSource(writeDataDir(t, tt.files))
			_, err := source.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLocalSourceMissingTransactionsMap(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		UsersFile:        usersJSON,
		CreditCardsFile:  cardsJSON,
		TransactionsFile: `{}`,
	})

	source := NewLocalSource(dir)
	data, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, data.Transactions)
	assert.Empty(t, data.Transactions)
}
