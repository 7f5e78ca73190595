package service

import "strings"

// Roles recognised by the academic record services.
const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

// Actor identifies the authenticated caller performing an operation.
type Actor struct {
	ID   uint
	Role string
}

// CanRecordAcademicData reports whether the actor may write attendance or
// marks. Only professors and admins record academic data.
func (a Actor) CanRecordAcademicData() bool {
	switch strings.ToLower(strings.TrimSpace(a.Role)) {
	case RoleAdmin, RoleProfessor:
		return true
	default:
		return false
	}
}
