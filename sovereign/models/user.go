package models

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User is a household member: a row in the Users sheet. Auth is a cookie
// carrying the user's token, checked against this table on each request.
type User struct {
	Row int

	Name  string
	Role  Role
	Token string
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
