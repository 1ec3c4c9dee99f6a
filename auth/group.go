package auth

// AuthorsGroup is the name of the group whose members get the Author role.
const AuthorsGroup = "Blog Authors"

type DBGroup interface {
	ID() int
	Name() string
	HasMember(u DBUser) (bool, error)
	Members() (map[int]interface{}, error) // user id => struct{}
}

type GroupDB interface {
	DeleteGroup(g DBGroup) error
	GetAllGroups(limit, offset int) ([]DBGroup, error)
	GetGroup(id int) (DBGroup, error)
	GetGroupByName(name string) (DBGroup, error)
	GetGroupsOf(u DBUser) ([]DBGroup, error)
	InsertGroup(name string) (DBGroup, error)
	Join(g DBGroup, u DBUser) error
	Leave(g DBGroup, u DBUser) error
}

// IsAuthorsGroup returns true if g grants the Author role.
func IsAuthorsGroup(g DBGroup) bool {
	return g != nil && g.Name() == AuthorsGroup
}
