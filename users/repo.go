package users

// Repo is the credential store contract.
//
// Add is atomic: a failed create never leaves a partial record. FindBy and
// Update reject unknown field names with errors.ErrInvalidFilter.
type Repo interface {
	Add(email, passwordHash string) (*User, error)
	FindBy(filter Filter) (*User, error)
	Update(id string, fields Fields) error
}
