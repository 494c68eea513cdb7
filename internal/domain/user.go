package domain

// User is the authenticated platform account, as reported by the remote API.
// Session state itself is opaque cookies held by the API client.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}
