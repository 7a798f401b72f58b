package domain

// User is an account known to the identity service
type User struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Host is a user that owns at least one place
type Host struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}
