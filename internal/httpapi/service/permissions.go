package service

// Caller identifies the authenticated user behind a request, as extracted by
// the auth middleware.
type Caller struct {
	ID      string
	Email   string
	IsStaff bool
}

// Object-level capability checks. Staff bypass every check unconditionally.
// Course-membership and student-membership are enforced as query scopes in
// the repositories (ListForStudent, FindByIDForStudent), so an object outside
// the caller's scope is simply not found.

// canModifyOwned reports whether the caller may mutate an object created by
// creatorID.
func canModifyOwned(caller Caller, creatorID string) bool {
	return caller.ID == creatorID || caller.IsStaff
}
