package models

// Role is the closed set of account roles the backend issues.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher:
		return true
	}
	return false
}

// DashboardPath is where a freshly logged-in or misrouted user lands.
func (r Role) DashboardPath() string {
	if r == RoleTeacher {
		return "/teacher/dashboard"
	}
	return "/dashboard"
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsStudent() bool { return u.Role == RoleStudent }
