package auth

import (
	"slices"
	"testing"
)

func TestAdminHoldsEveryPermission(t *testing.T) {
	admin := RolePermissions[RoleAdmin]
	for _, perm := range DefaultPermissions {
		if !slices.Contains(admin, perm) {
			t.Fatalf("admin missing %s", perm)
		}
	}
}

func TestRolePermissionsAreSubsetsOfDefault(t *testing.T) {
	for role, perms := range RolePermissions {
		for _, perm := range perms {
			if !slices.Contains(DefaultPermissions, perm) {
				t.Fatalf("role %s grants unknown permission %s", role, perm)
			}
		}
	}
}

func TestEmployeeCannotWritePayroll(t *testing.T) {
	for _, perm := range []string{PermPayrollWrite, PermPayrollExport, PermEvaluationsFinalize, PermCatalogWrite, PermAdminMetrics} {
		if slices.Contains(RolePermissions[RoleEmployee], perm) {
			t.Fatalf("employee must not hold %s", perm)
		}
	}
}

func TestPrivilegedRoles(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleDepartmentHead, RoleTeamLead} {
		if !IsPrivileged(role) {
			t.Fatalf("expected %s to be privileged", role)
		}
	}
	if IsPrivileged(RoleEmployee) {
		t.Fatal("employee must not be privileged")
	}
	if IsPrivileged("unknown") {
		t.Fatal("unknown role must not be privileged")
	}
}
