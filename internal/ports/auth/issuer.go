package auth

// TokenIssuer firma tokens para usuarios y refugios tras el login.
type TokenIssuer interface {
	Issue(c Claims) (string, error)
}
