package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusCancelled, true},
		{StatusSent, StatusPaid, true},
		{StatusSent, StatusCancelled, true},
		{StatusDraft, StatusPaid, false},
		{StatusPaid, StatusCancelled, false},
		{StatusCancelled, StatusSent, false},
		{StatusPaid, StatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
