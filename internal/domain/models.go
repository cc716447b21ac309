package domain

import "time"

type PermissionSet struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

type AccessEntry struct {
	Name       string        `json:"name"`
	Path       string        `json:"path"`
	UserAccess PermissionSet `json:"userAccess"`
}

// NavNode is the read-only navigation schema the dashboard exposes.
// It is ground truth for which paths can be assigned; this service
// never mutates it.
type NavNode struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	IconName string    `json:"iconName,omitempty"`
	Children []NavNode `json:"children,omitempty"`
}

type Role struct {
	ID              string        `json:"_id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Note            string        `json:"note"`
	Description     string        `json:"description"`
	DashboardAccess []AccessEntry `json:"dashboard_access_ui"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type VerificationRecord struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r VerificationRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

type ListFilter struct {
	Page   int
	Limit  int
	Search string
}
