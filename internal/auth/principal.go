package auth

// Principal is the authenticated identity reconstructed from a valid
// token on each request.
type Principal struct {
	UserID   uint
	Username string
	Roles    []string
}

// HasRole reports whether the principal holds the named role.
func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}
