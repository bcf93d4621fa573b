package user

import (
	"time"

	"hampernest-be/internal/rbac"
)

type User struct {
	ID        string
	Email     string
	Password  string
	Role      rbac.Role
	SellerID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SellerProfile is the storefront identity a seller account carries. Orders
// and products reference it by ID, never by the owning user directly.
type SellerProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	StoreName   string    `json:"store_name"`
	Description *string   `json:"description,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
