package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (Logger, *test.Hook) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	return &logger{entry: logrus.NewEntry(base)}, hook
}

func TestWithFields_Development(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	l, hook := newTestLogger()

	l.WithFields(Fields{
		"scenario_id": "abc123",
		"user_id":     7,
		"remote_addr": "127.0.0.1",
	}).Info("cenário criado")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "abc123", entry.Data["scenario_id"])
	assert.Equal(t, 7, entry.Data["user_id"])
	assert.NotContains(t, entry.Data, "remote_addr")
}

func TestWithFields_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	l, hook := newTestLogger()

	l.WithField("remote_addr", "127.0.0.1").Warn("requisição lenta")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "127.0.0.1", entry.Data["remote_addr"])
	assert.Equal(t, logrus.WarnLevel, entry.Level)
}

func TestCorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	l, hook := newTestLogger()

	ctx, id := WithCorrelationID(context.Background())
	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))

	l.WithContext(ctx).Info("com correlação")

	assert.Equal(t, id, hook.LastEntry().Data[correlationIDField])
}
