package realtime

import (
	"github.com/maxaizer/ats-realtime/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_NewSweeper_WhenIntervalNotPositive_ShouldFail(t *testing.T) {
	_, err := NewSweeper(newTestHub(), 0)

	assert.Error(t, err)
}

func Test_Sweeper_WhenConnectionSilent_ShouldReapIt(t *testing.T) {
	hub := newTestHub()
	silent := connectAs(t, hub, "a", 42, entities.RoleRecruiter)
	listener := newFakeTransport("b")
	hub.Connect(listener)

	// cron rounds sub-second schedules up to one second
	sweeper, err := NewSweeper(hub, time.Second)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		// keep the listener alive between sweeps
		hub.Pong(listener)
		return hub.Registry().Len() == 1
	}, 5*time.Second, 50*time.Millisecond)
	sweeper.Stop()

	_, stillRegistered := hub.Registry().Identity(silent)
	assert.False(t, stillRegistered)
	offline := listener.received(TypeUserOffline)
	require.Len(t, offline, 1)
	assert.Equal(t, float64(42), offline[0]["userId"])
}
