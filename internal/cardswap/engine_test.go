package cardswap_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/cardswap"
	"github.com/Zachkp/portfolio/internal/cardswap/cardswaptest"
)

func newEngine(t *testing.T, n int, mutate func(*cardswap.Config), opts ...cardswap.Option) (*cardswap.Engine, *cardswaptest.Clock, []*cardswaptest.Handle) {
	t.Helper()
	cfg := cardswap.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	clock := cardswaptest.NewClock()
	cards, handles := cardswaptest.Cards(n)
	e, err := cardswap.New(cfg, cards, append([]cardswap.Option{cardswap.WithClock(clock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(e.Destroy)
	return e, clock, handles
}

func rotatedLeft(n, k int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i + k) % n
	}
	return out
}

func TestStartRotatesImmediatelyThenOnInterval(t *testing.T) {
	e, clock, _ := newEngine(t, 3, nil)

	require.NoError(t, e.Start())
	assert.Equal(t, []int{1, 2, 0}, e.Order(), "start performs one rotation")

	clock.Advance(4999 * time.Millisecond)
	assert.Equal(t, []int{1, 2, 0}, e.Order())

	clock.Advance(time.Millisecond)
	assert.Equal(t, []int{2, 0, 1}, e.Order())

	clock.Advance(5 * time.Second)
	assert.Equal(t, []int{0, 1, 2}, e.Order())
}

func TestStartPlacesEveryCardBeforeMoving(t *testing.T) {
	e, _, handles := newEngine(t, 3, nil)
	require.NoError(t, e.Start())

	for id, h := range handles {
		calls := h.Calls()
		require.NotEmpty(t, calls, "card %d", id)
		assert.Equal(t, "place", calls[0].Kind)

		want := cardswap.MakeSlot(id, 3, 60, 70)
		assert.Equal(t, want.X, calls[0].Transform.X)
		assert.Equal(t, want.Y, calls[0].Transform.Y)
		assert.Equal(t, want.Z, calls[0].Transform.Z)
		assert.Equal(t, want.ZIndex, calls[0].Transform.ZIndex)
		assert.Equal(t, 6.0, calls[0].Transform.SkewY)
		assert.Equal(t, 500.0, calls[0].Transform.Width)
	}
}

func TestRotationPhases(t *testing.T) {
	e, clock, handles := newEngine(t, 3, nil)
	require.NoError(t, e.Start())

	// Drop runs at once and goes straight down.
	front := handles[0].Calls()
	require.Len(t, front, 2)
	assert.Equal(t, "animate", front[1].Kind)
	assert.Equal(t, cardswap.DropDistance, front[1].Offset.Y)
	assert.Equal(t, 2*time.Second, front[1].Motion.Duration)
	assert.Equal(t, "elastic.out(0.6,0.9)", front[1].Motion.Ease)

	// Promote has not started for the others yet.
	assert.Equal(t, []string{"place"}, handles[1].Kinds())
	assert.Equal(t, []string{"place"}, handles[2].Kinds())

	// Card 1 moves to the front slot roughly 200ms in.
	clock.Advance(210 * time.Millisecond)
	calls := handles[1].Calls()
	require.Equal(t, []string{"place", "stack", "animate"}, handles[1].Kinds())
	assert.Equal(t, 3, calls[1].ZIndex)
	assert.Equal(t, cardswap.Offset{X: 0, Y: 0, Z: 0}, calls[2].Offset)
	assert.Equal(t, []string{"place"}, handles[2].Kinds(), "second card is staggered")

	// Return starts at ~300ms and lands the dropped card in the back slot.
	clock.Advance(100 * time.Millisecond)
	front = handles[0].Calls()
	require.Equal(t, []string{"place", "animate", "stack", "animate"}, handles[0].Kinds())
	assert.Equal(t, 1, front[2].ZIndex)
	back := cardswap.MakeSlot(2, 3, 60, 70)
	assert.Equal(t, cardswap.Offset{X: back.X, Y: back.Y, Z: back.Z}, front[3].Offset)

	// Card 2 follows at ~350ms into the middle slot.
	clock.Advance(50 * time.Millisecond)
	calls = handles[2].Calls()
	require.Equal(t, []string{"place", "stack", "animate"}, handles[2].Kinds())
	assert.Equal(t, 2, calls[1].ZIndex)
	mid := cardswap.MakeSlot(1, 3, 60, 70)
	assert.Equal(t, cardswap.Offset{X: mid.X, Y: mid.Y, Z: mid.Z}, calls[2].Offset)
}

func TestOrderAfterKRotations(t *testing.T) {
	for n := 2; n <= 6; n++ {
		e, _, _ := newEngine(t, n, nil)
		for k := 0; k <= 2*n+1; k++ {
			assert.Equal(t, rotatedLeft(n, k), e.Order(), "n=%d k=%d", n, k)
			e.RotateOnce()
		}
	}
}

func TestFewerThanTwoCardsNeverRotate(t *testing.T) {
	for _, n := range []int{0, 1} {
		e, clock, handles := newEngine(t, n, nil)
		require.NoError(t, e.Start())
		for i := 0; i < 5; i++ {
			e.RotateOnce()
		}
		clock.Advance(time.Minute)
		assert.Equal(t, rotatedLeft(n, 0), e.Order())
		for _, h := range handles {
			assert.Equal(t, []string{"place"}, h.Kinds(), "no animation for a lone card")
		}
	}
}

func TestOverlappingCycleIsSkipped(t *testing.T) {
	e, clock, _ := newEngine(t, 3, func(c *cardswap.Config) { c.Interval = time.Second })
	require.NoError(t, e.Start())

	clock.Advance(time.Second)
	assert.Equal(t, []int{1, 2, 0}, e.Order())
	clock.Advance(time.Second)
	assert.Equal(t, []int{1, 2, 0}, e.Order())
	assert.Equal(t, 2, e.Snapshot().Skipped)

	clock.Advance(time.Second)
	assert.Equal(t, []int{2, 0, 1}, e.Order())
}

func TestLinearFastPreset(t *testing.T) {
	e, _, handles := newEngine(t, 2, func(c *cardswap.Config) { c.Easing = cardswap.EasingLinearFast })
	require.NoError(t, e.Start())

	calls := handles[0].Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 800*time.Millisecond, calls[1].Motion.Duration)
	assert.Equal(t, "power1.inOut", calls[1].Motion.Ease)
}

func TestMissingHandleSkipsPhase(t *testing.T) {
	e, clock, handles := newEngine(t, 3, nil)
	e.Detach(1)

	require.NoError(t, e.Start())
	clock.Advance(5 * time.Second)

	assert.Empty(t, handles[1].Calls())
	assert.Equal(t, []int{2, 0, 1}, e.Order())
}

func TestFailingHandlesDoNotBreakOrder(t *testing.T) {
	e, clock, handles := newEngine(t, 3, nil)
	handles[0].Err = errors.New("transform failed")
	handles[2].Panic = true

	require.NotPanics(t, func() { require.NoError(t, e.Start()) })
	require.NotPanics(t, func() { clock.Advance(10 * time.Second) })

	assert.Equal(t, []int{0, 1, 2}, e.Order())
	assert.Equal(t, 3, e.Snapshot().Cycles)
}

func TestRotateOnceMidCycleSnapsCards(t *testing.T) {
	e, _, handles := newEngine(t, 3, nil)
	require.NoError(t, e.Start())
	drop := handles[0].Tweens()
	require.Len(t, drop, 1)

	e.RotateOnce()

	assert.True(t, drop[0].Canceled())
	assert.Equal(t, []int{2, 0, 1}, e.Order())

	calls := handles[0].Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "place", last.Kind, "dropped card snaps to the back slot")
	assert.Equal(t, 1, last.ZIndex)
}

func TestDestroyStopsEverything(t *testing.T) {
	container := &cardswaptest.Container{}
	e, clock, handles := newEngine(t, 3, func(c *cardswap.Config) { c.PauseOnHover = true },
		cardswap.WithContainer(container))
	require.NoError(t, e.Start())
	require.True(t, container.Subscribed())

	e.Destroy()
	e.Destroy()

	assert.False(t, container.Subscribed())
	assert.Zero(t, clock.Pending())
	assert.True(t, handles[0].Tweens()[0].Canceled())

	clock.Advance(time.Minute)
	assert.Equal(t, []int{1, 2, 0}, e.Order())
	assert.ErrorIs(t, e.Start(), cardswap.ErrDestroyed)
}

func assertAllCanceled(t *testing.T, handles []*cardswaptest.Handle) {
	t.Helper()
	for id, h := range handles {
		for i, tw := range h.Tweens() {
			assert.True(t, tw.Canceled(), "card %d tween %d", id, i)
		}
	}
}

func TestDestroyAfterReturnCancelsEveryTween(t *testing.T) {
	e, clock, handles := newEngine(t, 3, nil)
	require.NoError(t, e.Start())

	// Return has started on card 0 while its drop is still moving.
	clock.Advance(400 * time.Millisecond)
	require.Len(t, handles[0].Tweens(), 2)

	e.Destroy()
	assertAllCanceled(t, handles)
}

func TestRotateOnceAfterReturnCancelsEveryTween(t *testing.T) {
	e, clock, handles := newEngine(t, 3, nil)
	require.NoError(t, e.Start())

	clock.Advance(400 * time.Millisecond)
	before := make([][]*cardswaptest.Tween, len(handles))
	for i, h := range handles {
		before[i] = h.Tweens()
	}
	require.Len(t, before[0], 2)

	e.RotateOnce()

	for id, tws := range before {
		for i, tw := range tws {
			assert.True(t, tw.Canceled(), "card %d tween %d", id, i)
		}
	}
	assert.Equal(t, []int{2, 0, 1}, e.Order())
}

func TestDetachCancelsEveryTweenOfCard(t *testing.T) {
	e, clock, handles := newEngine(t, 3, nil)
	require.NoError(t, e.Start())

	clock.Advance(400 * time.Millisecond)
	require.Len(t, handles[0].Tweens(), 2)

	e.Detach(0)
	for i, tw := range handles[0].Tweens() {
		assert.True(t, tw.Canceled(), "tween %d", i)
	}
	assert.False(t, handles[1].Tweens()[0].Canceled())
}

func TestStartTwice(t *testing.T) {
	e, _, _ := newEngine(t, 2, nil)
	require.NoError(t, e.Start())
	assert.ErrorIs(t, e.Start(), cardswap.ErrStarted)
}

func TestClickReportsDisplayPosition(t *testing.T) {
	type click struct{ id, pos int }
	var got []click
	e, _, _ := newEngine(t, 3, func(c *cardswap.Config) {
		c.OnCardClick = func(id, pos int) { got = append(got, click{id, pos}) }
	})
	require.NoError(t, e.Start())

	e.Click(0)
	e.Click(1)
	e.Click(7)

	assert.Equal(t, []click{{0, 2}, {1, 0}}, got)
}

func TestSnapshotStates(t *testing.T) {
	e, _, _ := newEngine(t, 4, nil)
	v := e.Snapshot()
	assert.Equal(t, []int{0, 1, 2, 3}, v.Order)
	assert.Equal(t, []cardswap.CardState{
		cardswap.StateFront, cardswap.StateMiddle, cardswap.StateMiddle, cardswap.StateBack,
	}, v.States)
}

func TestNewRejectsBadCards(t *testing.T) {
	h := &cardswaptest.Handle{}

	_, err := cardswap.New(cardswap.DefaultConfig(), []cardswap.Card{{ID: 0, Handle: h}, {ID: 0, Handle: h}})
	assert.ErrorIs(t, err, cardswap.ErrDuplicateCard)

	_, err = cardswap.New(cardswap.DefaultConfig(), []cardswap.Card{{ID: 3, Handle: h}})
	assert.ErrorIs(t, err, cardswap.ErrCardOutOfRange)

	cfg := cardswap.DefaultConfig()
	cfg.Interval = 0
	_, err = cardswap.New(cfg, nil)
	assert.ErrorIs(t, err, cardswap.ErrInvalidConfig)
}
