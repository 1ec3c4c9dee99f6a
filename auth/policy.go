package auth

// CanManagePosts returns true if p is a superuser or a member of the "Blog Authors" group.
func CanManagePosts(p Principal) bool {
	return p.Authenticated() && p.Role >= Author
}

func CanCreate(p Principal) bool {
	return CanManagePosts(p)
}

// CanEdit returns true if p is a superuser or the author of the post.
// Membership in the "Blog Authors" group is not required.
func CanEdit(p Principal, authorID int) bool {
	if !p.Authenticated() {
		return false
	}
	return p.Role == Admin || p.User.ID() == authorID
}

func CanDelete(p Principal, authorID int) bool {
	return CanEdit(p, authorID)
}

// CanComment returns true for every logged-in user.
func CanComment(p Principal) bool {
	return p.Authenticated()
}

// CanModerate returns true if p may use the backend.
func CanModerate(p Principal) bool {
	return p.Authenticated() && p.Role == Admin
}
