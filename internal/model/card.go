package model

// CreditCard is one record from the raw cards feed. A card belongs to exactly
// one user (UserID) and is identified by AssignNo within the collection.
type CreditCard struct {
	UserID                        string
	CustomerNumber                string
	AssignNo                      string
	CardName                      string
	ProductCode                   string
	Limit                         float64
	AvailableLimit                float64
	AvailableCashLimit            float64
	Points                        float64
	StatementDate                 string
	StatementDueDate              string
	StatementAmount               float64
	StatementMinAmount            float64
	CanMakeLimitChangeRequest     bool
	IsSupCardUsageIncreaseAllowed bool
	IsAutoPaymentAvailable        bool
	IsActive                      bool
	RemainingStatementAmount      float64
	RemainingStatementMinAmount   float64
}

// CurrentBalance is the amount of credit currently drawn on the card.
func (c *CreditCard) CurrentBalance() float64 {
	return c.Limit - c.AvailableLimit
}

// productNames maps card product codes to their marketing names.
var productNames = map[string]string{
	"crd01":       "Standard Card",
	"crd02":       "Silver Card",
	"crdGold":     "Gold Card",
	"crdPlatinum": "Platinum Card",
}

// ProductDisplayName returns the marketing name for the card's product code,
// falling back to the raw code when it is unknown.
func (c *CreditCard) ProductDisplayName() string {
	if name, ok := productNames[c.ProductCode]; ok {
		return name
	}
	return c.ProductCode
}
