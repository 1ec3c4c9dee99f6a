package auth

// Higher roles include lower roles.
type Role int

const (
	Reader Role = 100 // read published posts, comment if logged in
	Author Role = 200 // create posts, edit and delete own posts
	Admin  Role = 500 // edit and delete all posts, moderate comments, manage users and groups
)

func (r Role) String() string {
	switch r {
	case Reader:
		return "reader"
	case Author:
		return "author"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// ResolveRole determines the role of a user, given the groups which the user is a member of.
// A nil user is a Reader.
func ResolveRole(u DBUser, groups []DBGroup) Role {
	if u == nil {
		return Reader
	}
	if u.Superuser() {
		return Admin
	}
	for _, g := range groups {
		if IsAuthorsGroup(g) {
			return Author
		}
	}
	return Reader
}
