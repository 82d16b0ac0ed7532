package authsvc

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

// Service implements the standalone user-authentication surface:
// registration, login, session lookup, logout and the password-reset round
// trip. The live session identifier is kept on the user record itself and
// looked up through the credential-store filter.
type Service struct {
	users    users.Repo
	newToken func() string // token generator (injectable for testing)
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithTokenGenerator sets the session/reset token generator (primarily for
// testing)
func WithTokenGenerator(generator func() string) Option {
	return func(s *Service) {
		s.newToken = generator
	}
}

func New(userRepo users.Repo, options ...Option) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[authsvc.New] user repo is required")
	}

	service := &Service{
		users:    userRepo,
		newToken: func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// RegisterUser creates a new user. Registering an email twice fails with
// errors.ErrDuplicateEmail; a failed create leaves no partial record.
func (s *Service) RegisterUser(email, password string) (*users.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("[Service.RegisterUser] email and password are required")
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.RegisterUser] HashPassword")
	}

	user, err := s.users.Add(email, passwordHash)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.RegisterUser] Add")
	}
	return user, nil
}

// ValidLogin reports whether the credentials match a registered user.
// Every failure mode - unknown email, wrong password - reduces to false.
func (s *Service) ValidLogin(email, password string) bool {
	user, err := s.users.FindBy(users.Filter{users.FieldEmail: email})
	if err != nil {
		return false
	}
	return user.CheckPasswordHash(password)
}

// CreateSession issues a session for the user owning email and returns its
// identifier. An unknown email yields an empty identifier without error.
func (s *Service) CreateSession(email string) (string, error) {
	user, err := s.users.FindBy(users.Filter{users.FieldEmail: email})
	if err != nil {
		if interrors.Is(err, interrors.ErrNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "[Service.CreateSession] FindBy")
	}

	sessionID := s.newToken()
	if err := s.users.Update(user.ID, users.Fields{users.FieldSessionID: sessionID}); err != nil {
		return "", errors.Wrap(err, "[Service.CreateSession] Update")
	}
	return sessionID, nil
}

// UserFromSessionID resolves the user owning sessionID, or nil when the
// session is unknown or empty.
func (s *Service) UserFromSessionID(sessionID string) *users.User {
	if sessionID == "" {
		return nil
	}
	user, err := s.users.FindBy(users.Filter{users.FieldSessionID: sessionID})
	if err != nil {
		return nil
	}
	return user
}

// DestroySession clears the user's live session.
func (s *Service) DestroySession(userID string) error {
	if userID == "" {
		return nil
	}
	if err := s.users.Update(userID, users.Fields{users.FieldSessionID: ""}); err != nil {
		return errors.Wrap(err, "[Service.DestroySession] Update")
	}
	return nil
}

// ResetPasswordToken generates a password-reset token for email. An
// unknown email fails with errors.ErrNotFound.
func (s *Service) ResetPasswordToken(email string) (string, error) {
	user, err := s.users.FindBy(users.Filter{users.FieldEmail: email})
	if err != nil {
		return "", errors.Wrap(err, "[Service.ResetPasswordToken] FindBy")
	}

	resetToken := s.newToken()
	if err := s.users.Update(user.ID, users.Fields{users.FieldResetToken: resetToken}); err != nil {
		return "", errors.Wrap(err, "[Service.ResetPasswordToken] Update")
	}
	return resetToken, nil
}

// UpdatePassword sets a new password for the user owning resetToken. The
// token is single-use: it is cleared in the same update that writes the
// new hash.
func (s *Service) UpdatePassword(resetToken, newPassword string) error {
	if resetToken == "" || newPassword == "" {
		return interrors.ErrInvalidResetToken
	}

	user, err := s.users.FindBy(users.Filter{users.FieldResetToken: resetToken})
	if err != nil {
		if interrors.Is(err, interrors.ErrNotFound) {
			return interrors.ErrInvalidResetToken
		}
		return errors.Wrap(err, "[Service.UpdatePassword] FindBy")
	}

	passwordHash, err := users.HashPassword(newPassword)
	if err != nil {
		return errors.Wrap(err, "[Service.UpdatePassword] HashPassword")
	}

	if err := s.users.Update(user.ID, users.Fields{
		users.FieldPasswordHash: passwordHash,
		users.FieldResetToken:   "",
	}); err != nil {
		return errors.Wrap(err, "[Service.UpdatePassword] Update")
	}
	return nil
}
