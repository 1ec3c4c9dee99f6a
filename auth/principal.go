package auth

// A Principal is the user behind a request, together with the role which has been resolved for it.
// The zero value is the anonymous principal.
type Principal struct {
	User DBUser // nil if anonymous
	Role Role
}

// Anonymous returns the principal of a request without a logged-in user.
func Anonymous() Principal {
	return Principal{Role: Reader}
}

// NewPrincipal resolves the role of u. If u is nil, the anonymous principal is returned.
func NewPrincipal(u DBUser, groups []DBGroup) Principal {
	if u == nil {
		return Anonymous()
	}
	return Principal{
		User: u,
		Role: ResolveRole(u, groups),
	}
}

func (p Principal) Authenticated() bool {
	return p.User != nil
}

// UserID returns zero if p is anonymous.
func (p Principal) UserID() int {
	if p.User == nil {
		return 0
	}
	return p.User.ID()
}
