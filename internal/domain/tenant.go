package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the isolation boundary: every managed record belongs to exactly
// one tenant.
type Tenant struct {
	ID        uuid.UUID
	Name      string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantUserStatus is the state of a user's membership in a tenant.
type TenantUserStatus string

const (
	TenantUserStatusActive  TenantUserStatus = "ACTIVE"
	TenantUserStatusInvited TenantUserStatus = "INVITED"
)

// TenantUser links a user to a tenant with a set of roles.
type TenantUser struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	Roles     []string
	Status    TenantUserStatus
	CreatedAt time.Time
}

// User is an admin user account.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
