package view

// Action is a user-triggered request against the orders API.
type Action int

const (
	ActionCreateOrder Action = iota + 1
	ActionRetrieveOrder
	ActionListOrders
	ActionSearchOrders
	ActionUpdateOrder
	ActionCancelOrder
	ActionDeleteOrder
	ActionListItems
	ActionAddItem
	ActionUpdateItem
	ActionDeleteItem
)

var actionLabels = map[Action]string{
	ActionCreateOrder:   "Create Order",
	ActionRetrieveOrder: "Retrieve Order",
	ActionListOrders:    "List Orders",
	ActionSearchOrders:  "Search Orders",
	ActionUpdateOrder:   "Update Order",
	ActionCancelOrder:   "Cancel Order",
	ActionDeleteOrder:   "Delete Order",
	ActionListItems:     "List Items",
	ActionAddItem:       "Add Item",
	ActionUpdateItem:    "Update Item",
	ActionDeleteItem:    "Delete Item",
}

func (a Action) String() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return "Unknown Action"
}

// UsesItemForm reports whether the action reads and writes the item form
// rather than the order form.
func (a Action) UsesItemForm() bool {
	switch a {
	case ActionListItems, ActionAddItem, ActionUpdateItem, ActionDeleteItem:
		return true
	}
	return false
}
