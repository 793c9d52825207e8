package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/cardlens/internal/common"
	"github.com/Veraticus/cardlens/internal/model"
)

// RemoteSource fetches the datasets from a blob store over HTTP. The store
// exposes an index listing every blob's pathname and download URL; the
// three dataset files are located by pathname suffix.
type RemoteSource struct {
	indexURL   string
	httpClient *http.Client
	retry      common.RetryOptions
}

// blob index response types.
type blobIndex struct {
	Blobs []blobRef `json:"blobs"`
}

type blobRef struct {
	Pathname string `json:"pathname"`
	URL      string `json:"url"`
}

// NewRemoteSource creates a source backed by a remote blob index.
func NewRemoteSource(indexURL string) *RemoteSource {
	return &RemoteSource{
		indexURL: indexURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name identifies the source in logs and errors.
func (s *RemoteSource) Name() string {
	return fmt.Sprintf("remote:%s", s.indexURL)
}

// Load fetches the blob index, locates the three dataset files and
// downloads each. Transient HTTP failures are retried with backoff.
func (s *RemoteSource) Load(ctx context.Context) (*model.RawData, error) {
	var index blobIndex
	if err := s.getJSON(ctx, s.indexURL, &index); err != nil {
		return nil, fmt.Errorf("failed to list remote datasets: %w", err)
	}

	usersRef, err := findBlob(index.Blobs, UsersFile)
	if err != nil {
		return nil, err
	}
	cardsRef, err := findBlob(index.Blobs, CreditCardsFile)
	if err != nil {
		return nil, err
	}
	transactionsRef, err := findBlob(index.Blobs, TransactionsFile)
	if err != nil {
		return nil, err
	}

	var users usersEnvelope
	if err := s.getJSON(ctx, usersRef.URL, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", UsersFile, err)
	}
	var cards cardsEnvelope
	if err := s.getJSON(ctx, cardsRef.URL, &cards); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", CreditCardsFile, err)
	}
	var transactions transactionsEnvelope
	if err := s.getJSON(ctx, transactionsRef.URL, &transactions); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", TransactionsFile, err)
	}

	if transactions.CreditCardTransactions == nil {
		transactions.CreditCardTransactions = make(map[string][]model.Transaction)
	}

	return &model.RawData{
		Users:        users.Users,
		CreditCards:  cards.UserCreditCards,
		Transactions: transactions.CreditCardTransactions,
	}, nil
}

func findBlob(blobs []blobRef, name string) (blobRef, error) {
	for _, blob := range blobs {
		if strings.HasSuffix(blob.Pathname, name) {
			return blob, nil
		}
	}
	return blobRef{}, fmt.Errorf("%w: %s not found in blob index", common.ErrDatasetIncomplete, name)
}

// getJSON fetches a URL and decodes the body, retrying server errors.
func (s *RemoteSource) getJSON(ctx context.Context, url string, out any) error {
	return common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("%w: %v", common.ErrFetchFailed, err), Retryable: true}
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			return common.ErrRateLimit
		}
		if resp.StatusCode != http.StatusOK {
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: unexpected status %d from %s", common.ErrFetchFailed, resp.StatusCode, url),
				Retryable: resp.StatusCode >= http.StatusInternalServerError,
			}
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to decode response: %w", err), Retryable: false}
		}
		return nil
	}, s.retry)
}
