package entity

// Identity is the result of successfully resolving a bearer token.
// It carries only what access control needs and lives for a single request;
// it is passed explicitly through the middleware chain, never read from
// ambient state.
type Identity struct {
	UserID  uint
	IsAdmin bool
}
