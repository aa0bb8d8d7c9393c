package models

// User is the profile returned by the backend's auth routes. We persist it
// verbatim in the local store under the "user" key.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthResult is the payload of a successful login/signup/google-signin call:
// a bearer token plus the user it belongs to.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
