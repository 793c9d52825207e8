package model

// Transaction is a single card transaction from the raw feed. Transactions
// arrive pre-grouped by card assignment number; AssignNo on the record echoes
// the group key.
type Transaction struct {
	AssignNo              string
	Amount                float64
	Description           string
	Date                  string
	CanPostInstallment    bool
	DebtOrCredit          string
	ForeignCurrencyAmount float64
	AuthorizationCode     string
	MerchantCategoryCode  string
	RewardPoints          float64
	TransactionID         string `json:"TransactionId"`
	TransactionType       string
	ProcessingStage       string
}
