// Package view holds the console's typed view-state and renders it. Rendering
// functions only read state; the terminal is a projection of it.
package view

import (
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
)

const SuccessMessage = "Success"

// Flash is the single-slot notice overwritten by each action's outcome.
type Flash struct {
	Message string
	IsError bool
}

func (f *Flash) Success() {
	f.Message = SuccessMessage
	f.IsError = false
}

func (f *Flash) Error(message string) {
	f.Message = message
	f.IsError = true
}

func (f *Flash) Clear() {
	*f = Flash{}
}

type State struct {
	Nav   *Navigator
	Order *form.Form
	Item  *form.Form
	// Results is the last rendered list, nil before any list action.
	Results *Table
	Flash   Flash
}

func NewState(layout form.Layout) *State {
	return &State{
		Nav:   NewNavigator(),
		Order: form.New(layout.Order),
		Item:  form.New(layout.Item),
	}
}

// Snapshot is the form input captured at submission time.
type Snapshot struct {
	Order map[string]string
	Item  map[string]string
}

func (s *State) Capture() Snapshot {
	return Snapshot{Order: s.Order.Snapshot(), Item: s.Item.Snapshot()}
}

// ClearForms is the explicit "clear" control: both forms and the results go.
func (s *State) ClearForms() {
	s.Order.Clear()
	s.Item.Clear()
	s.Results = nil
	s.Flash.Clear()
}
