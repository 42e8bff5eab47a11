package access

import (
	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

// PermissionSet is the capability view of a role inside one project.
type PermissionSet struct {
	CanViewBudget   bool `json:"can_view_budget"`
	CanEditBudget   bool `json:"can_edit_budget"`
	CanViewPayments bool `json:"can_view_payments"`
	CanEditPayments bool `json:"can_edit_payments"`
	CanManageUsers  bool `json:"can_manage_users"`
	CanEditProject  bool `json:"can_edit_project"`
	CanEditTasks    bool `json:"can_edit_tasks"`
	CanEditRooms    bool `json:"can_edit_rooms"`
}

var rolePermissions = map[model.Role]PermissionSet{
	model.RoleOwner: {
		CanViewBudget:   true,
		CanEditBudget:   true,
		CanViewPayments: true,
		CanEditPayments: true,
		CanManageUsers:  true,
		CanEditProject:  true,
		CanEditTasks:    true,
		CanEditRooms:    true,
	},
	model.RoleAdmin: {
		CanViewBudget:   true,
		CanEditBudget:   true,
		CanViewPayments: true,
		CanEditPayments: true,
		CanManageUsers:  true,
		CanEditProject:  true,
		CanEditTasks:    true,
		CanEditRooms:    true,
	},
	model.RoleFamily: {
		CanViewBudget:   true,
		CanViewPayments: true,
		CanEditTasks:    true,
		CanEditRooms:    true,
	},
	model.RoleContractor: {
		CanEditTasks: true,
	},
	model.RoleDesigner: {
		CanEditTasks: true,
	},
	model.RoleViewOnly: {},
}

// PermissionsFor maps a role to its capability flags. It is total: any
// unrecognized role maps to the zero set, which denies everything.
func PermissionsFor(role model.Role) PermissionSet {
	return rolePermissions[role]
}

// PermissionDeniedError is returned when a caller lacks a capability or has
// no role in the project at all.
type PermissionDeniedError struct {
	UserID    int64
	ProjectID int64
	Operation string
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}
