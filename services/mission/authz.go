package mission

import (
	"errandly/models"
	"errandly/utils"
)

// operation names a guarded lifecycle entry point.
type operation string

const (
	opCreate   operation = "create"
	opAccept   operation = "accept"
	opStart    operation = "start"
	opComplete operation = "complete"
	opCancel   operation = "cancel"
	opGet      operation = "get"
)

// relation is the required relationship between caller and mission.
type relation int

const (
	relNone             relation = iota // no mission involved yet
	relAssignedProvider                 // caller is the assigned provider
	relParty                            // caller is client or assigned provider
)

type rule struct {
	role       models.UserRole // required role, "" means any
	rel        relation
	adminOk    bool // an ADMIN passes regardless of relationship
	denialText string
}

// authzRules is the single place where role and ownership requirements
// live; every operation checks it once on entry.
var authzRules = map[operation]rule{
	opCreate:   {role: models.RoleClient, rel: relNone, denialText: "only clients can create missions"},
	opAccept:   {role: models.RoleProvider, rel: relNone, denialText: "only providers can accept missions"},
	opStart:    {rel: relAssignedProvider, denialText: "access denied"},
	opComplete: {rel: relAssignedProvider, denialText: "access denied"},
	opCancel:   {rel: relParty, denialText: "access denied"},
	opGet:      {rel: relParty, adminOk: true, denialText: "access denied"},
}

// authorize evaluates the rule for op. mission may be nil for operations
// with relNone.
func authorize(op operation, caller *models.User, mission *models.Mission) error {
	r, ok := authzRules[op]
	if !ok {
		return utils.PermissionError("access denied")
	}

	if r.adminOk && caller.Role == models.RoleAdmin {
		return nil
	}
	if r.role != "" && caller.Role != r.role {
		return utils.PermissionError("%s", r.denialText)
	}

	switch r.rel {
	case relNone:
		return nil
	case relAssignedProvider:
		if mission.ProviderID() != caller.ID {
			return utils.PermissionError("%s", r.denialText)
		}
	case relParty:
		if !mission.IsParty(caller.ID) {
			return utils.PermissionError("%s", r.denialText)
		}
	}
	return nil
}
