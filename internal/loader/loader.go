// Package loader materializes the three raw datasets from a configured
// source before the analysis engine runs. Sources do all the I/O; the engine
// itself never touches the filesystem or the network.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/cardlens/internal/model"
)

// The three dataset files every source must provide.
const (
	UsersFile        = "users.json"
	CreditCardsFile  = "credit_cards.json"
	TransactionsFile = "transactions.json"
)

// Source loads a complete raw dataset.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Load materializes all three datasets. It either returns a complete
	// RawData or an error; there are no partial results.
	Load(ctx context.Context) (*model.RawData, error)
}

// File envelopes as delivered by the upstream feeds.
type usersEnvelope struct {
	Users []model.User
}

type cardsEnvelope struct {
	UserCreditCards []model.CreditCard
}

type transactionsEnvelope struct {
	CreditCardTransactions map[string][]model.Transaction
}

func decodeUsers(r io.Reader) ([]model.User, error) {
	var envelope usersEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return envelope.Users, nil
}

func decodeCreditCards(r io.Reader) ([]model.CreditCard, error) {
	var envelope cardsEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode credit cards: %w", err)
	}
	return envelope.UserCreditCards, nil
}

func decodeTransactions(r io.Reader) (map[string][]model.Transaction, error) {
	var envelope transactionsEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	if envelope.CreditCardTransactions == nil {
		envelope.CreditCardTransactions = make(map[string][]model.Transaction)
	}
	return envelope.CreditCardTransactions, nil
}
