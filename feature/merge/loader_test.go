package merge

import (
	"context"
	"testing"

	"asset-diff/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	// Without a database the feature runs without history.
	feature := NewFeature(mockClient, "test-bucket", logger, nil, Config{HistoryEnabled: true})

	assert.Equal(t, "merge", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.False(t, feature.Service().HistoryEnabled())
	assert.NoError(t, feature.Migrate(context.Background()))

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
