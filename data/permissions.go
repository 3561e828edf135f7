package data

import "net/http"

// The permission predicates below are pure boolean functions of the requesting
// user, the HTTP method and, for object-level checks, the ID of the object's
// author. A false result is translated into a 403 by the handler layer; the
// predicates themselves never error. Each route is gated by exactly one
// predicate family. Authentication is always checked before any role field is
// read, relying on Go's short-circuit evaluation.

// IsSafeMethod reports whether method is a read-only HTTP verb.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// PermitAdminOrSuperuser grants access to authenticated admins and to any
// superuser, regardless of method. Gates the user-management surface.
func PermitAdminOrSuperuser(u *User) bool {
	return !u.IsAnonymous() && u.IsAdmin() || u.Superuser
}

// PermitAdminOrReadOnly grants safe methods to anyone and write methods to
// authenticated admins only. Gates categories, genres and titles, which have
// no personal owner.
func PermitAdminOrReadOnly(u *User, method string) bool {
	return !u.IsAnonymous() && u.IsAdmin() || IsSafeMethod(method)
}

// PermitAdminOrReadOnlyObject is the object-level twin of PermitAdminOrReadOnly.
// There is no ownership concept for these objects, so the logic is identical.
func PermitAdminOrReadOnlyObject(u *User, method string) bool {
	return IsSafeMethod(method) || !u.IsAnonymous() && u.IsAdmin()
}

// PermitAdminModeratorOwnerOrReadOnly is the collection-level check for
// reviews and comments: anyone may read, writing requires authentication.
func PermitAdminModeratorOwnerOrReadOnly(u *User, method string) bool {
	return !u.IsAnonymous() || IsSafeMethod(method)
}

// PermitAdminModeratorOwnerOrReadOnlyObject is the object-level check for
// reviews and comments. DELETE is granted to the object's author, to an
// authenticated admin, to a moderator, or to a superuser. Any other write is
// granted to the author or an authenticated admin only; a moderator who is
// not the author may delete but not update. The asymmetry is intentional and
// must not be collapsed.
func PermitAdminModeratorOwnerOrReadOnlyObject(u *User, method string, authorID int64) bool {
	if method == http.MethodDelete {
		return !u.IsAnonymous() && (u.ID == authorID || u.IsAdmin() || u.IsModerator() || u.Superuser)
	}
	return IsSafeMethod(method) ||
		!u.IsAnonymous() && (u.ID == authorID || u.IsAdmin())
}

// PermitAdminModeratorOwner requires authentication for any access. Currently
// gates no route; kept as a reusable building block.
func PermitAdminModeratorOwner(u *User) bool {
	return !u.IsAnonymous()
}

// PermitAdminModeratorOwnerObject grants object access to the author or an
// authenticated admin, with no read-only carve-out.
func PermitAdminModeratorOwnerObject(u *User, authorID int64) bool {
	return !u.IsAnonymous() && (u.ID == authorID || u.IsAdmin())
}
