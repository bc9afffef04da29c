package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	startErr error
	events   *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(context.Context) error {
	*f.events = append(*f.events, "start "+f.name)
	return f.startErr
}

func (f *fakeService) Stop(context.Context) error {
	*f.events = append(*f.events, "stop "+f.name)
	return nil
}

func TestManagerStartStopOrder(t *testing.T) {
	var events []string
	m := NewManager()
	require.NoError(t, m.Register(&fakeService{name: "a", events: &events}))
	require.NoError(t, m.Register(&fakeService{name: "b", events: &events}))

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop(context.Background()))
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestManagerRejectsDuplicateNames(t *testing.T) {
	var events []string
	m := NewManager()
	require.NoError(t, m.Register(&fakeService{name: "a", events: &events}))
	assert.Error(t, m.Register(&fakeService{name: "a", events: &events}))
}

func TestManagerRejectsRegisterAfterStart(t *testing.T) {
	var events []string
	m := NewManager()
	require.NoError(t, m.Register(&fakeService{name: "a", events: &events}))
	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Register(&fakeService{name: "b", events: &events}))
}

func TestManagerRollsBackFailedStart(t *testing.T) {
	var events []string
	m := NewManager()
	require.NoError(t, m.Register(&fakeService{name: "a", events: &events}))
	require.NoError(t, m.Register(&fakeService{name: "b", startErr: errors.New("boom"), events: &events}))

	require.Error(t, m.Start(context.Background()))
	assert.Equal(t, []string{"start a", "start b", "stop a"}, events)

	// The manager never reached the started state, so Stop changes nothing.
	require.NoError(t, m.Stop(context.Background()))
	assert.Len(t, events, 3)
}
