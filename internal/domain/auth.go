package domain

// Identity is the decoded, trusted payload of a session token.
// The JSON shape is consumed by existing web clients.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"usuario,omitempty"`
	Email    string `json:"email"`
}
