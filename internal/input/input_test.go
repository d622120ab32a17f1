package input

import "testing"

const keyW Key = 87

func TestKeyTicks(t *testing.T) {
	m := NewManager()

	m.HandleKey(keyW, Press)
	if !m.IsKeyDown(keyW) || m.KeyTicks(keyW) != 1 {
		t.Fatalf("after press: down=%v ticks=%d", m.IsKeyDown(keyW), m.KeyTicks(keyW))
	}

	m.Update()
	m.Update()
	if got := m.KeyTicks(keyW); got != 3 {
		t.Errorf("after two updates: ticks=%d, want 3", got)
	}

	// a repeat does not restart the count
	m.HandleKey(keyW, Repeat)
	if got := m.KeyTicks(keyW); got != 3 {
		t.Errorf("after repeat: ticks=%d, want 3", got)
	}

	m.HandleKey(keyW, Release)
	if m.IsKeyDown(keyW) || m.KeyTicks(keyW) != 0 {
		t.Errorf("after release: down=%v ticks=%d", m.IsKeyDown(keyW), m.KeyTicks(keyW))
	}
	m.Update()
	if m.KeyTicks(keyW) != 0 {
		t.Errorf("released key kept counting")
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	m := NewManager()
	m.HandleKey(KeyUnknown, Press)
	if m.IsKeyDown(KeyUnknown) || m.JustPressed(KeyUnknown) {
		t.Errorf("unknown key was recorded")
	}
}

func TestEdgesClearOnUpdate(t *testing.T) {
	m := NewManager()

	m.HandleKey(keyW, Press)
	if !m.JustPressed(keyW) {
		t.Fatalf("press not reported")
	}
	m.Update()
	if m.JustPressed(keyW) {
		t.Errorf("press still reported after Update")
	}

	m.HandleKey(keyW, Release)
	if !m.JustReleased(keyW) {
		t.Fatalf("release not reported")
	}
	m.Update()
	if m.JustReleased(keyW) {
		t.Errorf("release still reported after Update")
	}

	// releasing a key that was never down is not an edge
	m.HandleKey(65, Release)
	if m.JustReleased(65) {
		t.Errorf("release of an idle key reported")
	}
}

func TestButtons(t *testing.T) {
	m := NewManager()
	const left Button = 0

	m.HandleButton(left, Press)
	m.Update()
	if !m.IsButtonDown(left) || m.ButtonTicks(left) != 2 {
		t.Errorf("down=%v ticks=%d", m.IsButtonDown(left), m.ButtonTicks(left))
	}
	m.HandleButton(left, Release)
	if m.IsButtonDown(left) {
		t.Errorf("button still down after release")
	}
}
