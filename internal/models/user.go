package models

type User struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	IsStaff     bool   `json:"is_staff,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
}

// Credentials is what the signup and signin forms submit.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
