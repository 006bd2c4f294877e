package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueNotifiesOnlyOnChange(t *testing.T) {
	v := NewValue(1)
	calls := 0
	unsub := v.Subscribe(func() { calls++ })

	v.Set(1)
	assert.Equal(t, 0, calls)
	v.Set(2)
	assert.Equal(t, 1, calls)
	v.Update(func(n int) int { return n + 1 })
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, v.Get())

	unsub()
	v.Set(4)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, v.Subscribers())
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	v := NewValue("a")
	var order []string
	var unsubB func()
	v.Subscribe(func() {
		order = append(order, "a")
		unsubB()
	})
	unsubB = v.Subscribe(func() { order = append(order, "b") })

	v.Set("b")
	assert.Equal(t, []string{"a"}, order)
}

func TestComputed(t *testing.T) {
	a := NewValue(2)
	b := NewValue(3)
	sum := NewComputed(func() int { return a.Get() + b.Get() }, a, b)
	parity := NewComputed(func() bool { return sum.Get()%2 == 0 }, sum)

	require.Equal(t, 5, sum.Get())
	require.False(t, parity.Get())

	notified := 0
	parity.Subscribe(func() { notified++ })

	a.Set(4)
	assert.Equal(t, 7, sum.Get())
	assert.Equal(t, 0, notified, "parity unchanged, no notification")

	b.Set(4)
	assert.Equal(t, 8, sum.Get())
	assert.True(t, parity.Get())
	assert.Equal(t, 1, notified)

	sum.Dispose()
	a.Set(100)
	assert.Equal(t, 8, sum.Get())
}

func TestEffectTeardownBeforeRerun(t *testing.T) {
	v := NewValue(0)
	var log []string
	e := NewEffect(func() func() {
		n := v.Get()
		log = append(log, "run", itoa(n))
		return func() { log = append(log, "cleanup", itoa(n)) }
	}, v)

	v.Set(1)
	assert.Empty(t, log, "effect must not run before Start")

	e.Start()
	v.Set(2)
	v.Set(2)
	e.Stop()
	v.Set(3)

	assert.Equal(t, []string{
		"run", "1",
		"cleanup", "1", "run", "2",
		"cleanup", "2",
	}, log)
	assert.Equal(t, 2, e.Passes())
	assert.False(t, e.Active())
}

func TestEffectWriteDuringPassReruns(t *testing.T) {
	v := NewValue(0)
	runs := 0
	e := NewEffect(func() func() {
		runs++
		if v.Get() == 0 {
			v.Set(1)
			return nil
		}
		return nil
	}, v)
	e.Start()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, v.Get())
}

func TestEffectStopInsidePass(t *testing.T) {
	v := NewValue(0)
	cleaned := 0
	var e *Effect
	e = NewEffect(func() func() {
		if v.Get() == 1 {
			e.Stop()
		}
		return func() { cleaned++ }
	}, v)
	e.Start()
	v.Set(1)
	assert.Equal(t, 2, cleaned)
	v.Set(2)
	assert.Equal(t, 2, e.Passes())
}

func TestQueueDefersStart(t *testing.T) {
	var q Queue
	v := NewValue(0)
	runs := 0
	e := NewEffect(func() func() { runs++; return nil }, v)
	e.StartOn(&q)
	assert.Equal(t, 0, runs)
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, 1, runs)
	assert.True(t, e.Active())

	stopped := NewEffect(func() func() { runs++; return nil }, v)
	stopped.StartOn(&q)
	stopped.Stop()
	q.Flush()
	assert.Equal(t, 1, runs, "stopped effect must not start later")
}

func TestImmediateScheduler(t *testing.T) {
	ran := false
	Immediate.Schedule(func() { ran = true })
	Immediate.Schedule(nil)
	assert.True(t, ran)
}

func itoa(n int) string {
	return string(rune('0' + n))
}
