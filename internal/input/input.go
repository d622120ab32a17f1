// Package input tracks how long keys and mouse buttons have been held.
package input

import "sync"

// Key is a window-system key code. Codes are opaque to this package apart
// from KeyUnknown.
type Key int

// Button is a window-system mouse button code
type Button int

// Action is a key or button transition. Values match GLFW.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// KeyUnknown is reported for keys the window system cannot identify
const KeyUnknown Key = -1

// Manager counts the ticks each key and mouse button has been held. A held
// input reports 1 on the tick it was pressed and grows by one on every
// Update after that.
type Manager struct {
	mu sync.RWMutex

	keys    map[Key]int
	buttons map[Button]int

	// Just pressed/released flags (reset each Update)
	justPressed  map[Key]bool
	justReleased map[Key]bool
}

// NewManager returns a manager with nothing held
func NewManager() *Manager {
	return &Manager{
		keys:         make(map[Key]int),
		buttons:      make(map[Button]int),
		justPressed:  make(map[Key]bool),
		justReleased: make(map[Key]bool),
	}
}

// HandleKey records a key event. Repeats keep the key held without
// restarting its tick count.
func (m *Manager) HandleKey(key Key, action Action) {
	if key == KeyUnknown {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch action {
	case Press:
		if m.keys[key] == 0 {
			m.justPressed[key] = true
		}
		m.keys[key] = 1
	case Repeat:
		if m.keys[key] == 0 {
			m.justPressed[key] = true
			m.keys[key] = 1
		}
	case Release:
		if m.keys[key] != 0 {
			m.justReleased[key] = true
		}
		delete(m.keys, key)
	}
}

// HandleButton records a mouse button event
func (m *Manager) HandleButton(button Button, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch action {
	case Press:
		m.buttons[button] = 1
	case Release:
		delete(m.buttons, button)
	}
}

// Update advances every held input by one tick and clears edge flags.
// Call once per frame after the frame has read its input.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.keys {
		m.keys[k]++
	}
	for b := range m.buttons {
		m.buttons[b]++
	}
	clear(m.justPressed)
	clear(m.justReleased)
}

// IsKeyDown reports whether key is currently held
func (m *Manager) IsKeyDown(key Key) bool {
	return m.KeyTicks(key) != 0
}

// KeyTicks returns how many ticks key has been held, or 0 if it is up
func (m *Manager) KeyTicks(key Key) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keys[key]
}

// JustPressed reports whether key went down since the last Update
func (m *Manager) JustPressed(key Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[key]
}

// JustReleased reports whether key went up since the last Update
func (m *Manager) JustReleased(key Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[key]
}

// IsButtonDown reports whether button is currently held
func (m *Manager) IsButtonDown(button Button) bool {
	return m.ButtonTicks(button) != 0
}

// ButtonTicks returns how many ticks button has been held, or 0 if it is up
func (m *Manager) ButtonTicks(button Button) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buttons[button]
}
