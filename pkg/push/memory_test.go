package push_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/notifykit/pkg/notifications"
	"github.com/deskhive/notifykit/pkg/push"
)

func TestMemoryChannel_DeliversInOrder(t *testing.T) {
	t.Parallel()

	ch := push.NewMemoryChannel(8)
	defer func() { _ = ch.Close() }()

	require.True(t, ch.PublishNotification(notifications.Notification{ID: "n-1", Title: "first"}))
	require.True(t, ch.PublishCounter(4))
	require.True(t, ch.PublishNotification(notifications.Notification{ID: "n-2", Title: "second"}))

	ev := <-ch.Events()
	require.Equal(t, notifications.EventNewNotification, ev.Kind)
	assert.Equal(t, "n-1", ev.Notification.ID)

	ev = <-ch.Events()
	require.Equal(t, notifications.EventCounterUpdate, ev.Kind)
	assert.Equal(t, 4, ev.Count)

	ev = <-ch.Events()
	require.Equal(t, notifications.EventNewNotification, ev.Kind)
	assert.Equal(t, "n-2", ev.Notification.ID)
}

func TestMemoryChannel_AssignsMissingID(t *testing.T) {
	t.Parallel()

	ch := push.NewMemoryChannel(1)
	defer func() { _ = ch.Close() }()

	require.True(t, ch.PublishNotification(notifications.Notification{Title: "no id"}))

	ev := <-ch.Events()
	assert.NotEmpty(t, ev.Notification.ID)
}

func TestMemoryChannel_DropsWhenFull(t *testing.T) {
	t.Parallel()

	ch := push.NewMemoryChannel(1)
	defer func() { _ = ch.Close() }()

	assert.True(t, ch.PublishCounter(1))
	assert.False(t, ch.PublishCounter(2), "full queue drops instead of blocking")
}

func TestMemoryChannel_Close(t *testing.T) {
	t.Parallel()

	ch := push.NewMemoryChannel(4)
	assert.True(t, ch.Connected())

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close(), "close is idempotent")

	assert.False(t, ch.Connected())
	assert.False(t, ch.PublishCounter(1), "publish after close is rejected")

	_, open := <-ch.Events()
	assert.False(t, open, "event queue is closed")
}

func TestMemoryChannel_SetConnected(t *testing.T) {
	t.Parallel()

	ch := push.NewMemoryChannel(1)
	defer func() { _ = ch.Close() }()

	ch.SetConnected(false)
	assert.False(t, ch.Connected())
	ch.SetConnected(true)
	assert.True(t, ch.Connected())
}
