package core

import (
	"errors"
	"sort"
	"strings"

	"github.com/wansing/blog/auth"
)

var ErrAuthorsGroup = errors.New(`the group "` + auth.AuthorsGroup + `" can't be deleted`)

// AuthorsGroup returns the group whose members get the Author role.
func (c *CoreDB) AuthorsGroup() (auth.DBGroup, error) {
	return c.GetGroupByName(auth.AuthorsGroup)
}

// IsAuthor returns whether u is a member of the "Blog Authors" group.
func (c *CoreDB) IsAuthor(u auth.DBUser) (bool, error) {
	g, err := c.AuthorsGroup()
	if err != nil {
		return false, err
	}
	return g.HasMember(u)
}

// SetAuthor grants or revokes the Author role by joining or leaving the "Blog Authors" group.
func (c *CoreDB) SetAuthor(u auth.DBUser, author bool) error {
	g, err := c.AuthorsGroup()
	if err != nil {
		return err
	}
	isMember, err := g.HasMember(u)
	if err != nil {
		return err
	}
	switch {
	case author && !isMember:
		return c.Join(g, u)
	case !author && isMember:
		return c.Leave(g, u)
	}
	return nil
}

// DeleteGroup shadows GroupDB.DeleteGroup.
func (c *CoreDB) DeleteGroup(g auth.DBGroup) error {
	if auth.IsAuthorsGroup(g) {
		return ErrAuthorsGroup
	}
	return c.GroupDB.DeleteGroup(g)
}

// InsertGroup shadows GroupDB.InsertGroup.
func (c *CoreDB) InsertGroup(name string) (auth.DBGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("group name can't be empty")
	}
	return c.GroupDB.InsertGroup(name)
}

// GroupMembers returns the members of g, sorted by name.
func (c *CoreDB) GroupMembers(g auth.DBGroup) ([]auth.DBUser, error) {

	memberIDs, err := g.Members()
	if err != nil {
		return nil, err
	}

	var members = make([]auth.DBUser, 0, len(memberIDs))
	for memberID := range memberIDs { // map: user id -> interface{}
		member, err := c.GetUser(memberID)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	sort.Slice(members, func(i, j int) bool {
		return strings.ToLower(members[i].Name()) < strings.ToLower(members[j].Name())
	})

	return members, nil
}
