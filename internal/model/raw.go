package model

// RawData is the fully-materialized input to an analysis run: the three
// datasets as delivered by a loader.Source. The engine treats it as
// immutable.
type RawData struct {
	Users       []User
	CreditCards []CreditCard
	// Transactions maps a card's AssignNo to that card's ordered
	// transaction list.
	Transactions map[string][]Transaction
}

// TransactionCount sums the group sizes. Every transaction counts once,
// debt or credit, regardless of whether its card resolves.
func (d *RawData) TransactionCount() int {
	total := 0
	for _, group := range d.Transactions {
		total += len(group)
	}
	return total
}
