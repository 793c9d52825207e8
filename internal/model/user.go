package model

// User is one record from the raw users feed. ID is the join key to cards.
type User struct {
	ID             string
	CustomerNumber string
	Name           string
	Surname        string
	Email          string
	Phone          string
	Address        string
	City           string
	Gender         string
	BirthDate      string
	Profession     string
	CreatedAt      string
	UpdatedAt      string
}

// FullName returns the display name used throughout the insight records.
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}
