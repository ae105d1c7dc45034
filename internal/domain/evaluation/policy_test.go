package evaluation

import (
	"testing"

	"bizman/internal/domain/auth"
)

func TestResolveCapabilitiesPrivilegedRoles(t *testing.T) {
	for _, role := range []string{auth.RoleAdmin, auth.RoleDepartmentHead, auth.RoleTeamLead} {
		caps := ResolveCapabilities(role, "", "someone-else")
		if !caps.CanRead || !caps.CanWriteSelf || !caps.CanWriteSupervisor1 || !caps.CanWriteSupervisor2 {
			t.Fatalf("role %s expected full capabilities, got %+v", role, caps)
		}
	}
}

func TestResolveCapabilitiesOwnRecord(t *testing.T) {
	caps := ResolveCapabilities(auth.RoleEmployee, "emp-1", "emp-1")
	if !caps.CanRead || !caps.CanWriteSelf {
		t.Fatalf("owner expected read + self write, got %+v", caps)
	}
	if caps.CanWriteSupervisor1 || caps.CanWriteSupervisor2 {
		t.Fatalf("owner must not write supervisor stages, got %+v", caps)
	}
}

func TestResolveCapabilitiesForeignRecord(t *testing.T) {
	caps := ResolveCapabilities(auth.RoleEmployee, "emp-1", "emp-2")
	if caps.CanRead || caps.CanWriteSelf || caps.CanWriteSupervisor1 || caps.CanWriteSupervisor2 {
		t.Fatalf("foreign record expected no capabilities, got %+v", caps)
	}
}

func TestResolveCapabilitiesNoEmployeeRecord(t *testing.T) {
	// A caller without an employee record cannot claim ownership of anything.
	caps := ResolveCapabilities(auth.RoleEmployee, "", "")
	if caps.CanRead || caps.CanWriteSelf {
		t.Fatalf("empty caller employee id must not match, got %+v", caps)
	}
}

func TestCapabilitiesCanWriteUnknownStage(t *testing.T) {
	caps := ResolveCapabilities(auth.RoleAdmin, "", "emp-1")
	if caps.CanWrite(Stage("manager")) {
		t.Fatal("unknown stage must never be writable")
	}
}
