//go:build unit

package request_test

import (
	"testing"

	"facility-reservation/internal/domain/request"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDeriveHeaderStatus(t *testing.T) {
	u, a, r := request.LineUnassigned, request.LineAssigned, request.LineRejected

	tests := []struct {
		name  string
		lines []request.LineStatus
		want  request.HeaderStatus
	}{
		{"no lines", nil, request.HeaderPending},
		{"all unassigned", []request.LineStatus{u, u}, request.HeaderPending},
		{"some resolved some not", []request.LineStatus{a, u}, request.HeaderInProgress},
		{"rejected with unassigned", []request.LineStatus{r, u}, request.HeaderInProgress},
		{"all assigned", []request.LineStatus{a, a, a}, request.HeaderFullyResolved},
		{"single assigned", []request.LineStatus{a}, request.HeaderFullyResolved},
		{"all rejected", []request.LineStatus{r, r}, request.HeaderRejectedEntirely},
		{"mixed terminal", []request.LineStatus{a, r}, request.HeaderPartiallyResolved},
		{"mixed terminal many", []request.LineStatus{a, a, r, a}, request.HeaderPartiallyResolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, request.DeriveHeaderStatus(tt.lines))
		})
	}
}

// The derivation must not depend on line order: approving lines in any
// sequence ends at the same overall status.
func TestDeriveHeaderStatusOrderIndependent(t *testing.T) {
	statuses := []request.LineStatus{
		request.LineUnassigned, request.LineAssigned, request.LineRejected,
	}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		lines := make([]request.LineStatus, n)
		for i := range lines {
			lines[i] = statuses[rapid.IntRange(0, 2).Draw(t, "status")]
		}

		want := request.DeriveHeaderStatus(lines)

		perm := rapid.Permutation(lines).Draw(t, "perm")
		got := request.DeriveHeaderStatus(perm)

		if got != want {
			t.Fatalf("status changed under reordering: %v vs %v", want, got)
		}
	})
}
