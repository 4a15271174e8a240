package rbac

import "go-hradmin/internal/domain"

type Permission struct {
	Resource string
	Action   string
}

// Policies lists what each role may do on top of what it inherits.
var Policies = map[domain.Role][]Permission{
	domain.RoleEmployee: {
		{"vacation", "create"},
		{"vacation", "read_own"},
		{"medical_leave", "read_own"},
		{"overtime", "create"},
		{"overtime", "read_own"},
		{"employee", "read_self"},
		{"document", "read_own"},
		{"document", "download"},
		{"remuneration", "read_own"},
	},
	domain.RoleHRAdmin: {
		{"vacation", "read"},
		{"vacation", "approve"},
		{"medical_leave", "create"},
		{"medical_leave", "read"},
		{"overtime", "read"},
		{"overtime", "approve"},
		{"employee", "read"},
		{"employee", "create"},
		{"employee", "update"},
		{"employee", "adjust"},
		{"document", "create"},
		{"document", "read"},
		{"document", "delete"},
		{"remuneration", "read"},
		{"remuneration", "publish"},
		{"remuneration", "annul"},
	},
	domain.RoleDirectionAdmin: {
		{"audit", "read"},
	},
}

// Inheritance is child -> parent: the child gets every parent permission.
var Inheritance = [][2]domain.Role{
	{domain.RoleHRAdmin, domain.RoleEmployee},
	{domain.RoleDirectionAdmin, domain.RoleHRAdmin},
}
