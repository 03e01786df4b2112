package dto

type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email,max=255"`
	Password         string `json:"password" binding:"required,min=6,max=72"`
	Name             string `json:"name" binding:"required,max=255"`
	OrganizationName string `json:"organization_name" binding:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserItem `json:"user"`
}

// UserItem never exposes the password hash.
type UserItem struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type OrganizationItem struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ParentID  *string            `json:"parent_id,omitempty"`
	Children  []OrganizationItem `json:"children,omitempty"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

type CreateSubOrganizationRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
