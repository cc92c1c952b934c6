package types

type UserResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Permission string `json:"permission"`
	Enabled    bool   `json:"enabled"`
}
