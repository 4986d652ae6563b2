package student

// Student is a member of the class. There are no per-student credentials;
// everyone logs in with their username and the shared class password.
type Student struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	FullName string `json:"fullName" db:"full_name"`

	// InGroupEven tells which half of the class the student belongs to;
	// deadlines and teacher corrections are tracked per group.
	InGroupEven bool `json:"inGroupEven" db:"in_group_even"`
}
