package view

// Page is one pane of the console. Exactly one page is visible at a time.
type Page int

const (
	PageCreate Page = iota
	PageRead
	PageUpdate
	PageDelete
	PageSearch
)

var Pages = []Page{PageCreate, PageRead, PageUpdate, PageDelete, PageSearch}

func (p Page) String() string {
	switch p {
	case PageCreate:
		return "Create"
	case PageRead:
		return "Read"
	case PageUpdate:
		return "Update"
	case PageDelete:
		return "Delete"
	case PageSearch:
		return "Search"
	}
	return "Unknown"
}

// Actions lists the buttons shown on the page.
func (p Page) Actions() []Action {
	switch p {
	case PageCreate:
		return []Action{ActionCreateOrder, ActionAddItem}
	case PageRead:
		return []Action{ActionRetrieveOrder, ActionListOrders, ActionListItems}
	case PageUpdate:
		return []Action{ActionUpdateOrder, ActionCancelOrder, ActionUpdateItem}
	case PageDelete:
		return []Action{ActionDeleteOrder, ActionDeleteItem}
	case PageSearch:
		return []Action{ActionSearchOrders}
	}
	return nil
}

// Navigator is the show/hide toggle between pages.
type Navigator struct {
	active Page
}

func NewNavigator() *Navigator {
	return &Navigator{active: PageCreate}
}

func (n *Navigator) Active() Page {
	return n.active
}

// Show makes p the only visible page. Unknown pages are ignored.
func (n *Navigator) Show(p Page) {
	if p < PageCreate || p > PageSearch {
		return
	}
	n.active = p
}

func (n *Navigator) Visible(p Page) bool {
	return n.active == p
}

// Enabled reports whether the control that activates p can be pressed; it is
// disabled while p is already showing.
func (n *Navigator) Enabled(p Page) bool {
	return n.active != p
}
