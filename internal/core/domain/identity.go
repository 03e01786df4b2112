package domain

import "time"

type Organization struct {
	ID        string
	Name      string
	ParentID  *string
	Children  []Organization
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID             string
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	OrganizationID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Caller is the authenticated identity a request acts as.
type Caller struct {
	UserID               string
	Email                string
	Role                 Role
	OrganizationID       string
	ParentOrganizationID string
	Permissions          []Permission
}

func (c Caller) HasParentOrganization() bool {
	return c.ParentOrganizationID != ""
}

type RegisterInput struct {
	Email            string
	Password         string
	Name             string
	OrganizationName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	AccessToken string
	User        User
}
