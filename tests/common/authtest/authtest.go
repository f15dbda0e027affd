//go:build unit || e2e

package authtest

import (
	"testing"

	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/config"
	"facility-reservation/internal/pkg/token"

	"github.com/stretchr/testify/require"
)

// IssueToken signs a bearer token for actor the way the identity service
// would, using the test JWT secret.
func IssueToken(t *testing.T, cfg config.Config, actor authz.Actor) string {
	t.Helper()

	signed, err := token.NewValidator(cfg.JWT).Issue(actor)
	require.NoError(t, err, "failed to issue test token")
	return signed
}
