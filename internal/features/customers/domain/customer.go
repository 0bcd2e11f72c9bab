package domain

import (
	"errors"
	"strings"
	"time"

	"ticket-sales/internal/core/access"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailTaken       = errors.New("customer with this email already exists")
	// ErrPrivilegeEscalation is returned when a non-privileged caller sets staff or superuser flags.
	ErrPrivilegeEscalation = errors.New("only staff may grant staff or superuser status")
	ErrPasswordRequired    = errors.New("password is required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Customer is an account. Customers log in with their email.
type Customer struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	DateJoined   time.Time `json:"date_joined"`
}

// Resource describes the customer for permission checks; a customer owns itself.
func (c *Customer) Resource() access.Resource {
	return access.Resource{Kind: access.KindCustomer, OwnerID: c.ID}
}

// Principal converts the account into the caller identity used by access checks.
func (c *Customer) Principal() access.Principal {
	return access.Principal{
		CustomerID:  c.ID,
		Email:       c.Email,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
	}
}

// CustomerInput is the body of create and full update requests.
type CustomerInput struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Name        string `json:"name" validate:"max=255"`
	Password    string `json:"password" validate:"omitempty,min=8,max=128"`
	IsStaff     *bool  `json:"is_staff"`
	IsSuperuser *bool  `json:"is_superuser"`
}

// CustomerPatch is a partial update; nil fields are left alone.
type CustomerPatch struct {
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=128"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// Patch turns a full update into a patch. An empty password keeps the current one.
func (in CustomerInput) Patch() CustomerPatch {
	p := CustomerPatch{
		Email:       &in.Email,
		Name:        &in.Name,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.IsSuperuser,
	}
	if in.Password != "" {
		p.Password = &in.Password
	}
	return p
}

// GrantsPrivileges reports whether the patch touches the staff or superuser flags.
func (p CustomerPatch) GrantsPrivileges() bool {
	return p.IsStaff != nil || p.IsSuperuser != nil
}

// Apply writes the set fields except the password onto c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Email != nil {
		c.Email = NormalizeEmail(*p.Email)
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.IsStaff != nil {
		c.IsStaff = *p.IsStaff
	}
	if p.IsSuperuser != nil {
		c.IsSuperuser = *p.IsSuperuser
	}
}

// NormalizeEmail lowercases the domain part, leaving the local part as typed.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
