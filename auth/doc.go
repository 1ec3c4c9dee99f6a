/*
Package auth is for authentication and authorization. It contains database interfaces (DBUser, DBGroup, UserDB, GroupDB), the Role of a Principal and the predicates which decide what a principal may do.

Roles

Every request is made by a Principal. Its role is resolved once per request:

  Reader  anonymous users and users without any special rights
  Author  members of the group "Blog Authors"
  Admin   superusers

Higher roles include lower roles. Authors and admins can create posts. Posts can be edited and deleted by their author and by admins. Every logged-in user can comment.

Registration never grants the Author role. It must be granted by an admin, either in the backend or with the init command.
*/
package auth
