package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/user-registration/app/internal/database"
	"github.com/user-registration/app/internal/logging"
	"github.com/user-registration/app/internal/models"
)

// MsgSuccess is reported after a user has been stored.
const MsgSuccess = "Registration successful!"

// ErrHashPassword is returned when the password cannot be hashed.
var ErrHashPassword = errors.New("hash password")

// maxPasswordBytes is the most bcrypt consumes; longer passwords are cut
// to this length before hashing and comparing.
const maxPasswordBytes = 72

// Outcome is the user-facing result of a registration attempt.
type Outcome struct {
	// Name and Email are echoed back into the form. Both are empty after a
	// successful registration.
	Name    string
	Email   string
	Errors  map[Field]string
	Success string
}

// Registrar validates submissions and appends new users to the store.
type Registrar struct {
	store database.Store
	cost  int

	// mu serialises load-check-append-save so concurrent requests in this
	// process cannot register the same email twice.
	mu sync.Mutex
}

// NewRegistrar returns a Registrar hashing with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewRegistrar(store database.Store, cost int) *Registrar {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Registrar{store: store, cost: cost}
}

// Register processes one submission. Validation failures and duplicate
// emails are reported in the Outcome; a non-nil error means the store or
// the hasher failed and nothing was persisted.
func (r *Registrar) Register(ctx context.Context, sub models.Submission) (*Outcome, error) {
	log := logging.FromContext(ctx)

	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)

	out := &Outcome{Name: sub.Name, Email: sub.Email}

	if errs := Validate(sub); !errs.Empty() {
		out.Errors = errs.FirstPerField()
		log.Info("registration rejected", "fields", failedFields(errs))
		return out, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.store.Load(ctx)
	if err != nil {
		log.Error("load users", "error", err)
		return nil, err
	}

	for _, u := range users {
		if u.Email == sub.Email {
			out.Errors = map[Field]string{FieldEmail: MsgEmailTaken}
			log.Info("registration rejected: email already registered", "email", sub.Email)
			return out, nil
		}
	}

	hash, err := bcrypt.GenerateFromPassword(hashInput(sub.Password), r.cost)
	if err != nil {
		log.Error("hash password", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrHashPassword, err)
	}

	users = append(users, models.User{
		Name:         sub.Name,
		Email:        sub.Email,
		PasswordHash: string(hash),
	})

	if err := r.store.Save(ctx, users); err != nil {
		log.Error("save users", "error", err)
		return nil, err
	}

	log.Info("user registered", "email", sub.Email, "total", len(users))
	return &Outcome{Success: MsgSuccess}, nil
}

// VerifyPassword reports whether password matches a PasswordHash written by
// Register, applying the same 72-byte cut. It returns nil on a match.
func VerifyPassword(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), hashInput(password))
}

func hashInput(password string) []byte {
	b := []byte(password)
	return b[:min(len(b), maxPasswordBytes)]
}

func failedFields(errs FieldErrors) []string {
	var out []string
	for _, f := range Fields {
		if len(errs[f]) > 0 {
			out = append(out, string(f))
		}
	}
	return out
}
