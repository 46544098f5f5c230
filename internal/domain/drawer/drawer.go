// Package drawer tracks the slide-over panel that shows the cart or favorites.
package drawer

import (
	"errors"
	"sync"
)

type Tab string

const (
	TabCart      Tab = "cart"
	TabFavorites Tab = "favorites"
)

var ErrUnknownTab = errors.New("unknown drawer tab")

// ParseTab accepts "cart" or "favorites"; the empty string means cart.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "", TabCart:
		return TabCart, nil
	case TabFavorites:
		return TabFavorites, nil
	}
	return "", ErrUnknownTab
}

// State is what a client can observe. ActiveTab is empty while closed.
type State struct {
	IsOpen    bool `json:"isOpen"`
	ActiveTab Tab  `json:"activeTab,omitempty"`
}

// Coordinator is the drawer state machine: closed, open on cart, or open on favorites.
// It starts closed with cart preselected.
type Coordinator struct {
	mu     sync.RWMutex
	isOpen bool
	tab    Tab
}

func NewCoordinator() *Coordinator {
	return &Coordinator{tab: TabCart}
}

// Open shows the drawer on tab. The zero Tab opens the cart.
func (c *Coordinator) Open(tab Tab) {
	if tab == "" {
		tab = TabCart
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
	c.isOpen = true
}

// Close hides the drawer and keeps the tab for the next open.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
}

// SetActiveTab switches tab without opening or closing.
func (c *Coordinator) SetActiveTab(tab Tab) {
	if tab == "" {
		tab = TabCart
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
}

func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.isOpen {
		return State{}
	}
	return State{IsOpen: true, ActiveTab: c.tab}
}

func (c *Coordinator) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isOpen
}

// ActiveTab returns the selected tab, including while closed.
func (c *Coordinator) ActiveTab() Tab {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tab
}
