package employees

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service owns employee validation, credentials and reads.
// Creation and removal with lead reassignment go through the workflow package.
type Service struct {
	repo Repository
	Now  func() time.Time

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, Now: time.Now, BcryptCost: bcrypt.DefaultCost}
}

// Validate checks a NewEmployee and returns a *ValidationError listing every bad field.
func Validate(in NewEmployee) error {
	fields := map[string]string{}
	if len(strings.TrimSpace(in.FirstName)) < 2 {
		fields["first_name"] = "First name must be at least 2 characters"
	}
	if len(strings.TrimSpace(in.LastName)) < 2 {
		fields["last_name"] = "Last name must be at least 2 characters"
	}
	if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
		fields["email"] = "Valid email is required"
	}
	if strings.TrimSpace(in.Location) == "" {
		fields["location"] = "Location is required"
	}
	if strings.TrimSpace(in.Languages) == "" {
		fields["languages"] = "At least one language is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Build validates in and returns an unsaved, active Employee.
// The initial password is the local part of the email address.
func (s *Service) Build(tenantID, createdBy string, in NewEmployee) (Employee, error) {
	if err := Validate(in); err != nil {
		return Employee{}, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	initial, _, _ := strings.Cut(email, "@")

	hash, err := bcrypt.GenerateFromPassword([]byte(initial), s.cost())
	if err != nil {
		return Employee{}, err
	}

	now := s.Now().UTC()
	return Employee{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Location:     strings.TrimSpace(in.Location),
		Languages:    strings.TrimSpace(in.Languages),
		PasswordHash: string(hash),
		Active:       true,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Authenticate checks credentials and stamps the login time.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, tenantID, email, password string) (Employee, error) {
	e, err := s.repo.GetByEmail(ctx, tenantID, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return Employee{}, ErrInvalidCredentials
	}
	if err != nil {
		return Employee{}, err
	}
	if !e.Active {
		return Employee{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return Employee{}, ErrInvalidCredentials
	}

	now := s.Now().UTC()
	if err := s.repo.TouchLogin(ctx, tenantID, e.ID, now); err != nil {
		return Employee{}, err
	}
	e.LastLoginAt = &now
	return e, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (Employee, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string) ([]Employee, error) {
	return s.repo.List(ctx, tenantID)
}

// Update applies an admin edit. Changing the email resets the password to the new
// local part, as for a new employee; reset reports whether that happened.
func (s *Service) Update(ctx context.Context, tenantID, id string, in EmployeeUpdate) (e Employee, reset bool, err error) {
	e, err = s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return Employee{}, false, err
	}

	fields := map[string]string{}
	changed := applyNames(&e, in.FirstName, in.LastName, fields)
	email, emailChanged := changedEmail(e.Email, in.Email, fields)
	if len(fields) > 0 {
		return Employee{}, false, &ValidationError{Fields: fields}
	}
	if emailChanged {
		local, _, _ := strings.Cut(email, "@")
		hash, err := bcrypt.GenerateFromPassword([]byte(local), s.cost())
		if err != nil {
			return Employee{}, false, err
		}
		e.Email = email
		e.PasswordHash = string(hash)
		changed = append(changed, "email")
	}
	if len(changed) == 0 {
		return e, false, nil
	}

	e.UpdatedAt = s.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return Employee{}, false, err
	}
	return e, emailChanged, nil
}

// UpdateProfile applies an employee's edit of their own account and returns the
// names of the changed fields. A new password must be confirmed, at least 8
// characters long and differ from the current one.
func (s *Service) UpdateProfile(ctx context.Context, tenantID, id string, in ProfileUpdate) (Employee, []string, error) {
	e, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return Employee{}, nil, err
	}

	fields := map[string]string{}
	changed := applyNames(&e, in.FirstName, in.LastName, fields)
	email, emailChanged := changedEmail(e.Email, in.Email, fields)
	if emailChanged {
		e.Email = email
		changed = append(changed, "email")
	}

	if in.Password != "" {
		switch {
		case in.ConfirmPassword == "":
			fields["password"] = "Please confirm your password"
		case in.Password != in.ConfirmPassword:
			fields["password"] = "Passwords do not match"
		case len(in.Password) < 8:
			fields["password"] = "Password must be at least 8 characters"
		case bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)) == nil:
			fields["password"] = "New password must be different from the current password"
		default:
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
			if err != nil {
				return Employee{}, nil, err
			}
			e.PasswordHash = string(hash)
			changed = append(changed, "password")
		}
	}
	if len(fields) > 0 {
		return Employee{}, nil, &ValidationError{Fields: fields}
	}
	if len(changed) == 0 {
		return e, changed, nil
	}

	e.UpdatedAt = s.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return Employee{}, nil, err
	}
	return e, changed, nil
}

// applyNames sets non-empty names on e and returns which ones changed.
func applyNames(e *Employee, first, last string, fields map[string]string) []string {
	var changed []string
	if first = strings.TrimSpace(first); first != "" && first != e.FirstName {
		if len(first) < 2 {
			fields["first_name"] = "First name must be at least 2 characters"
		} else {
			e.FirstName = first
			changed = append(changed, "first_name")
		}
	}
	if last = strings.TrimSpace(last); last != "" && last != e.LastName {
		if len(last) < 2 {
			fields["last_name"] = "Last name must be at least 2 characters"
		} else {
			e.LastName = last
			changed = append(changed, "last_name")
		}
	}
	return changed
}

func changedEmail(current, in string, fields map[string]string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(in))
	if email == "" || strings.EqualFold(email, current) {
		return current, false
	}
	if !emailRe.MatchString(email) {
		fields["email"] = "Valid email is required"
		return current, false
	}
	return email, true
}

func (s *Service) cost() int {
	if s.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}
