package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusFanOut(t *testing.T) {
	b := NewBus()
	a := b.Subscribe()
	c := b.Subscribe()
	defer b.Unsubscribe(a)
	defer b.Unsubscribe(c)

	b.Toast(LevelSuccess, "saved", "")

	for _, ch := range []chan Event{a, c} {
		select {
		case e := <-ch:
			assert.Equal(t, KindToast, e.Kind)
			assert.Equal(t, LevelSuccess, e.Level)
			assert.Equal(t, "saved", e.Message)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBusSlowSubscriberSkipped(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill the buffer and keep publishing; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.StoreChanged("points")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
}
