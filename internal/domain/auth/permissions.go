package auth

const (
	RoleAdmin          = "admin"
	RoleDepartmentHead = "department_head"
	RoleTeamLead       = "team_lead"
	RoleEmployee       = "employee"
)

const (
	PermCatalogRead         = "catalog.read"
	PermCatalogWrite        = "catalog.write"
	PermEvaluationsRead     = "evaluations.read"
	PermEvaluationsWrite    = "evaluations.write"
	PermEvaluationsFinalize = "evaluations.finalize"
	PermPayrollRead         = "payroll.read"
	PermPayrollWrite        = "payroll.write"
	PermPayrollExport       = "payroll.export"
	PermNotificationsRead   = "notifications.read"
	PermAdminMetrics        = "admin.metrics"
)

// DefaultPermissions is the complete permission set. Admin holds it outright;
// every other role carries a subset.
var DefaultPermissions = []string{
	PermCatalogRead,
	PermCatalogWrite,
	PermEvaluationsRead,
	PermEvaluationsWrite,
	PermEvaluationsFinalize,
	PermPayrollRead,
	PermPayrollWrite,
	PermPayrollExport,
	PermNotificationsRead,
	PermAdminMetrics,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermCatalogRead,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermPayrollRead,
		PermNotificationsRead,
	},
	RoleTeamLead: {
		PermCatalogRead,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermEvaluationsFinalize,
		PermPayrollRead,
		PermNotificationsRead,
	},
	RoleDepartmentHead: {
		PermCatalogRead,
		PermCatalogWrite,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermEvaluationsFinalize,
		PermPayrollRead,
		PermPayrollWrite,
		PermPayrollExport,
		PermNotificationsRead,
	},
	RoleAdmin: DefaultPermissions,
}

// IsPrivileged reports whether the role may act on evaluations it does not
// own. The supervisor chain on the employee record only determines who gets
// notified, not who is authorized to score.
func IsPrivileged(role string) bool {
	switch role {
	case RoleAdmin, RoleDepartmentHead, RoleTeamLead:
		return true
	}
	return false
}
