package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventSubscribeEmitOrder(t *testing.T) {
	var ev Event[int]
	var got []string

	ev.Subscribe(func(v int) { got = append(got, "a") })
	ev.Subscribe(func(v int) { got = append(got, "b") })
	ev.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEventUnsubscribeRemovesOnlyThatListener(t *testing.T) {
	var ev Event[string]
	calls := map[string]int{}

	first := ev.Subscribe(func(s string) { calls["first"]++ })
	ev.Subscribe(func(s string) { calls["second"]++ })

	assert.True(t, ev.Unsubscribe(first))
	assert.False(t, ev.Unsubscribe(first), "second removal is a no-op")
	ev.Emit("x")

	assert.Equal(t, 0, calls["first"])
	assert.Equal(t, 1, calls["second"])
	assert.Equal(t, 1, ev.Len())
}

func TestEventListenerMayUnsubscribeDuringEmit(t *testing.T) {
	var ev Event[int]
	var id ListenerID
	count := 0
	id = ev.Subscribe(func(int) {
		count++
		ev.Unsubscribe(id)
	})

	ev.Emit(1)
	ev.Emit(2)

	assert.Equal(t, 1, count)
}

func TestEventNilListener(t *testing.T) {
	var ev Event[int]
	assert.Equal(t, ListenerID(0), ev.Subscribe(nil))
	assert.False(t, ev.Unsubscribe(0))
}

func TestKeyAndButtonNames(t *testing.T) {
	code, ok := KeyByName("space")
	assert.True(t, ok)
	assert.Equal(t, KeySpace, code)

	_, ok = KeyByName("hyper")
	assert.False(t, ok)

	btn, ok := MouseButtonByName("right")
	assert.True(t, ok)
	assert.Equal(t, MouseRight, btn)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
