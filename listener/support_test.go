package listener_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/listener"
)

var errBoom = errors.New("boom")

type recordingListener struct {
	name     string
	received []event.Event
}

func (l *recordingListener) Entry(e event.Event) error {
	l.received = append(l.received, e)
	return nil
}

func newEvent(key any) event.Event {
	return &event.MapEvent{EventID: event.Updated, EventKey: key}
}

// TestScenarioS5ListenerPlanClassification implements §8's S5.
func TestScenarioS5ListenerPlanClassification(t *testing.T) {
	s := listener.New()
	l1 := &recordingListener{name: "L1"}
	s.AddFilterListener(nil, l1, false)

	require.Equal(t, listener.PlanAllListener, s.Plan())
	ls, _ := s.CollectListeners(newEvent("anything"))
	require.ElementsMatch(t, []listener.MapListener{l1}, ls.ToSlice())

	l2 := &recordingListener{name: "L2"}
	s.AddKeyListener("k", l2, false)

	// Adding a key listener alongside a global listener breaks both the
	// all-listener and key-listener fast paths.
	require.Equal(t, listener.PlanNoOptimize, s.Plan())

	lsK, _ := s.CollectListeners(newEvent("k"))
	require.ElementsMatch(t, []listener.MapListener{l1, l2}, lsK.ToSlice())

	lsOther, _ := s.CollectListeners(newEvent("other"))
	require.ElementsMatch(t, []listener.MapListener{l1}, lsOther.ToSlice())
}

// TestScenarioS6TransformedEventSkipsKeyListeners implements §8's S6.
func TestScenarioS6TransformedEventSkipsKeyListeners(t *testing.T) {
	s := listener.New()
	f := &alwaysMatchFilter{}
	lGlobal := &recordingListener{name: "global"}
	lKey := &recordingListener{name: "key"}

	s.AddFilterListener(f, lGlobal, false)
	s.AddKeyListener("k", lKey, false)

	e := &event.FilterEvent{
		Event:      &event.MapEvent{EventID: event.Updated, EventKey: "k", TransformState: event.Transformed},
		Provenance: event.FilterProvenance{f},
	}

	ls, _ := s.CollectListeners(e)
	received := ls.ToSlice()
	require.Contains(t, received, listener.MapListener(lGlobal))
	require.NotContains(t, received, listener.MapListener(lKey))
}

type alwaysMatchFilter struct{}

func (*alwaysMatchFilter) Evaluate(event.Event) bool { return true }

func TestNoListenersPlan(t *testing.T) {
	s := listener.New()
	require.Equal(t, listener.PlanNoListeners, s.Plan())
	ls, _ := s.CollectListeners(newEvent("x"))
	require.True(t, ls.IsEmpty())
}

func TestKeyListenerPlanWhenAllKeysShareSameSet(t *testing.T) {
	s := listener.New()
	shared := &recordingListener{name: "shared"}
	s.AddKeyListener("k1", shared, false)
	s.AddKeyListener("k2", shared, false)

	require.Equal(t, listener.PlanKeyListener, s.Plan())

	ls, _ := s.CollectListeners(newEvent("k1"))
	require.ElementsMatch(t, []listener.MapListener{shared}, ls.ToSlice())

	lsMiss, _ := s.CollectListeners(newEvent("k3"))
	require.True(t, lsMiss.IsEmpty())
}

func TestStandardFlagStickyAcrossReregistration(t *testing.T) {
	s := listener.New()
	l := &recordingListener{name: "l"}
	s.AddFilterListener(nil, l, false) // non-lite: standard
	require.True(t, s.IsStandard(nil))

	s.AddFilterListener(nil, l, true) // re-register lite: must stay standard
	require.True(t, s.IsStandard(nil))
}

func TestRemoveFilterListenerPrunesEmptyGroup(t *testing.T) {
	s := listener.New()
	l := &recordingListener{name: "l"}
	s.AddFilterListener(nil, l, false)
	s.RemoveFilterListener(nil, l)
	require.Equal(t, listener.PlanNoListeners, s.Plan())
}

func TestPrimingListenerReceivesSyntheticEventOnSubscribe(t *testing.T) {
	s := listener.New()
	var got event.Event
	p := listener.NewPriming(listener.SynchronousFunc(func(e event.Event) error {
		got = e
		return nil
	}))
	s.AddKeyListener("k", p, true)

	require.NotNil(t, got)
	require.True(t, got.Priming())
	require.True(t, got.Synthetic())
	require.Equal(t, "k", got.Key())
}

func TestDispatchAbortsOnSynchronousError(t *testing.T) {
	s := listener.New()
	var calledSecond bool
	failing := listener.SynchronousFunc(func(e event.Event) error { return errBoom })
	second := listener.SynchronousFunc(func(e event.Event) error { calledSecond = true; return nil })

	s.AddFilterListener(nil, failing, false)
	s.AddFilterListener(nil, second, false)

	err := s.Fire(newEvent("x"), nil, nil)
	require.Error(t, err)
	require.False(t, calledSecond)
}
