package types

// Identity is the verified caller attached to a request by the auth
// middleware. The UserID is the identity provider's subject claim and is
// used verbatim as the local user record key.
type Identity struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}
