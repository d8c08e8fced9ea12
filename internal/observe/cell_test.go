package observe

import "testing"

func TestGetReturnsInitial(t *testing.T) {
	c := NewCell(42)
	if got := c.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestSetNotifiesSubscribers(t *testing.T) {
	c := NewCell(false)

	var seen []bool
	c.Subscribe(func(v bool) { seen = append(seen, v) })
	c.Subscribe(func(v bool) { seen = append(seen, v) })

	c.Set(true)

	if got := c.Get(); got != true {
		t.Errorf("Get() after Set(true) = %v, want true", got)
	}
	if len(seen) != 2 {
		t.Fatalf("got %d notifications, want 2", len(seen))
	}
	for i, v := range seen {
		if v != true {
			t.Errorf("notification %d = %v, want true", i, v)
		}
	}
}

// TestSetSameValueIsSilent verifies that re-setting the current value does
// not fire subscribers.
func TestSetSameValueIsSilent(t *testing.T) {
	c := NewCell(7)

	calls := 0
	c.Subscribe(func(int) { calls++ })

	c.Set(7)
	if calls != 0 {
		t.Errorf("Set(same) fired %d notifications, want 0", calls)
	}

	c.Set(8)
	c.Set(8)
	if calls != 1 {
		t.Errorf("got %d notifications after one real change, want 1", calls)
	}
}

func TestSubscribeDoesNotReplayCurrent(t *testing.T) {
	c := NewCell("a")
	called := false
	c.Subscribe(func(string) { called = true })
	if called {
		t.Error("Subscribe must not invoke the callback with the current value")
	}
}
