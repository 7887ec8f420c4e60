package fx

import (
	"testing"

	"esports-digest/internal/server"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestModule_GraphIsComplete(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Invoke(func(*server.DigestServer) {}),
	)
	assert.NoError(t, err)
}
