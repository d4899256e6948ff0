package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.True(t, p.Allows("admin", CapScanTickets))
	assert.True(t, p.Allows("admin", CapManageEvents))
	assert.True(t, p.Allows("admin", CapViewStats))

	assert.True(t, p.Allows("scanner", CapScanTickets))
	assert.False(t, p.Allows("scanner", CapManageEvents))
	assert.False(t, p.Allows("scanner", CapViewStats))

	assert.False(t, p.Allows("attendee", CapScanTickets))
	assert.False(t, p.Allows("unknown-role", CapScanTickets))
}

func TestNew_CustomGrants(t *testing.T) {
	p := New(map[string][]string{
		"usher": {string(CapScanTickets)},
	})

	assert.True(t, p.Allows("usher", CapScanTickets))
	assert.False(t, p.Allows("usher", CapViewStats))
	// Roles from the defaults get nothing unless granted here.
	assert.False(t, p.Allows("admin", CapManageEvents))
}
