package constants

// User roles.
const (
	RoleParticipant = "participant"
	RoleSupervisor  = "supervisor"
	RoleSuperAdmin  = "super_admin"
)

// Account statuses. Registration lands in pending; only active accounts may
// submit cards or appear on rosters.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// MemberIDStart is the first membership number handed out.
const MemberIDStart = 1000

// ImportDefaultPassword is assigned to spreadsheet-imported accounts until
// the owner resets it.
const ImportDefaultPassword = "123456"

func ValidRole(r string) bool {
	return r == RoleParticipant || r == RoleSupervisor || r == RoleSuperAdmin
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusActive || s == StatusRejected || s == StatusWithdrawn
}
