package evaluation

import "bizman/internal/domain/auth"

// Capabilities is the per-request capability set for one evaluation record.
// Every read and write path resolves this once instead of scattering role
// checks per operation.
type Capabilities struct {
	CanRead             bool
	CanWriteSelf        bool
	CanWriteSupervisor1 bool
	CanWriteSupervisor2 bool
}

// ResolveCapabilities decides what the caller may do with an evaluation owned
// by ownerEmployeeID. Privileged roles may read and score anything; everyone
// else may only read their own record and write its self stage.
func ResolveCapabilities(role, callerEmployeeID, ownerEmployeeID string) Capabilities {
	if auth.IsPrivileged(role) {
		return Capabilities{
			CanRead:             true,
			CanWriteSelf:        true,
			CanWriteSupervisor1: true,
			CanWriteSupervisor2: true,
		}
	}
	if callerEmployeeID != "" && callerEmployeeID == ownerEmployeeID {
		return Capabilities{CanRead: true, CanWriteSelf: true}
	}
	return Capabilities{}
}

func (c Capabilities) CanWrite(stage Stage) bool {
	switch stage {
	case StageSelf:
		return c.CanWriteSelf
	case StageSupervisor1:
		return c.CanWriteSupervisor1
	case StageSupervisor2:
		return c.CanWriteSupervisor2
	}
	return false
}
