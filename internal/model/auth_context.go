package model

// AuthContext carries the verified identity of the caller through a request.
// It is built by the auth middleware after token verification.
type AuthContext struct {
	UserID string
}
