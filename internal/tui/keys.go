package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/cloud-wave-best-zizon/order-console/internal/view"
)

type keyMap struct {
	Quit  key.Binding
	Clear key.Binding
	Next  key.Binding
	Prev  key.Binding
	Pages map[view.Page]key.Binding
	// Actions are only live while their page is showing.
	Actions map[view.Action]key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Clear: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Next:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Pages: map[view.Page]key.Binding{
			view.PageCreate: key.NewBinding(key.WithKeys("f1")),
			view.PageRead:   key.NewBinding(key.WithKeys("f2")),
			view.PageUpdate: key.NewBinding(key.WithKeys("f3")),
			view.PageDelete: key.NewBinding(key.WithKeys("f4")),
			view.PageSearch: key.NewBinding(key.WithKeys("f5")),
		},
		Actions: map[view.Action]key.Binding{
			view.ActionCreateOrder:   actionKey("ctrl+n", view.ActionCreateOrder),
			view.ActionAddItem:       actionKey("ctrl+a", view.ActionAddItem),
			view.ActionRetrieveOrder: actionKey("ctrl+r", view.ActionRetrieveOrder),
			view.ActionListOrders:    actionKey("ctrl+l", view.ActionListOrders),
			view.ActionListItems:     actionKey("ctrl+t", view.ActionListItems),
			view.ActionUpdateOrder:   actionKey("ctrl+u", view.ActionUpdateOrder),
			view.ActionCancelOrder:   actionKey("ctrl+x", view.ActionCancelOrder),
			view.ActionUpdateItem:    actionKey("ctrl+e", view.ActionUpdateItem),
			view.ActionDeleteOrder:   actionKey("ctrl+d", view.ActionDeleteOrder),
			view.ActionDeleteItem:    actionKey("ctrl+k", view.ActionDeleteItem),
			view.ActionSearchOrders:  actionKey("ctrl+f", view.ActionSearchOrders),
		},
	}
}

func actionKey(k string, a view.Action) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, a.String()))
}

// ShortHelp implements help.KeyMap for the keys that are always live.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// pageHelp lists the action bindings of one page.
func (k keyMap) pageHelp(p view.Page) []key.Binding {
	actions := p.Actions()
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		out = append(out, k.Actions[a])
	}
	return out
}
