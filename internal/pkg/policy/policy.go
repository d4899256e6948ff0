// Package policy maps user roles to capabilities. Grants come from
// configuration, so deployments can extend or restrict roles without code
// changes; there is no hardcoded allow-list anywhere else in the codebase.
package policy

type Capability string

const (
	CapScanTickets  Capability = "scan_tickets"
	CapManageEvents Capability = "manage_events"
	CapViewStats    Capability = "view_stats"
)

type Policy struct {
	grants map[string]map[Capability]bool
}

// New builds a policy from role → capability-name grants. Unknown capability
// names are kept as-is so configuration can carry forward-compatible grants.
func New(roleGrants map[string][]string) *Policy {
	grants := make(map[string]map[Capability]bool, len(roleGrants))
	for role, caps := range roleGrants {
		set := make(map[Capability]bool, len(caps))
		for _, c := range caps {
			set[Capability(c)] = true
		}
		grants[role] = set
	}

	return &Policy{grants: grants}
}

// Default reflects the shipped roles: admins manage everything, scanners
// validate tickets at the door, attendees hold no elevated capability.
func Default() *Policy {
	return New(map[string][]string{
		"admin":   {string(CapScanTickets), string(CapManageEvents), string(CapViewStats)},
		"scanner": {string(CapScanTickets)},
	})
}

func (p *Policy) Allows(role string, cap Capability) bool {
	caps, ok := p.grants[role]
	if !ok {
		return false
	}
	return caps[cap]
}
