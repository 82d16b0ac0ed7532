package inmemoryrepo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

var _ users.Repo = (*Repo)(nil)

// Repo is the in-memory credential store. It is the default backing store
// for the service and doubles as the test double.
type Repo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func New() *Repo {
	return &Repo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

func (r *Repo) Add(email, passwordHash string) (*users.User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.emailIds[email]; exists {
		return nil, interrors.Wrapf(interrors.ErrDuplicateEmail, "[Repo.Add] %s", email)
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.users[user.ID] = user
	r.emailIds[email] = user.ID
	return copyUser(user), nil
}

func (r *Repo) FindBy(filter users.Filter) (*users.User, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	// Fast paths via indexes
	if id, ok := filter[users.FieldID]; ok {
		user, exists := r.users[id]
		if !exists || !filter.Matches(user) {
			return nil, interrors.ErrNotFound
		}
		return copyUser(user), nil
	}
	if email, ok := filter[users.FieldEmail]; ok {
		id, exists := r.emailIds[email]
		if !exists {
			return nil, interrors.ErrNotFound
		}
		if user := r.users[id]; filter.Matches(user) {
			return copyUser(user), nil
		}
		return nil, interrors.ErrNotFound
	}

	for _, user := range r.users {
		if filter.Matches(user) {
			return copyUser(user), nil
		}
	}
	return nil, interrors.ErrNotFound
}

func (r *Repo) Update(id string, fields users.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	user, exists := r.users[id]
	if !exists {
		return interrors.ErrNotFound
	}

	if email, ok := fields[users.FieldEmail]; ok && email != user.Email {
		if _, taken := r.emailIds[email]; taken {
			return interrors.Wrapf(interrors.ErrDuplicateEmail, "[Repo.Update] %s", email)
		}
		delete(r.emailIds, user.Email)
		r.emailIds[email] = user.ID
	}
	fields.Apply(user)
	return nil
}

// copyUser shields stored records from mutation by callers.
func copyUser(u *users.User) *users.User {
	clone := *u
	return &clone
}
