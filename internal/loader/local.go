package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/cardlens/internal/model"
)

// LocalSource reads the three dataset files from a directory.
type LocalSource struct {
	dir string
}

// NewLocalSource creates a source backed by a local data directory.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

// Name identifies the source in logs and errors.
func (s *LocalSource) Name() string {
	return fmt.Sprintf("local:%s", s.dir)
}

// Load reads and decodes users.json, credit_cards.json and
// transactions.json from the data directory.
func (s *LocalSource) Load(ctx context.Context) (*model.RawData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users, err := readFile(filepath.Join(s.dir, UsersFile), decodeUsers)
	if err != nil {
		return nil, err
	}
	cards, err := readFile(filepath.Join(s.dir, CreditCardsFile), decodeCreditCards)
	if err != nil {
		return nil, err
	}
	transactions, err := readFile(filepath.Join(s.dir, TransactionsFile), decodeTransactions)
	if err != nil {
		return nil, err
	}

	return &model.RawData{
		Users:        users,
		CreditCards:  cards,
		Transactions: transactions,
	}, nil
}

func readFile[T any](path string, decode func(r io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer func() {
		_ = f.Close()
	}()

	return decode(f)
}
