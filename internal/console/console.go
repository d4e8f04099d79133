// Package console binds the order and item forms to the orders API: it
// captures form input, dispatches one request per action and applies the
// outcome back onto the view-state.
package console

import (
	"context"
	"fmt"

	"github.com/cloud-wave-best-zizon/order-console/internal/client"
	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
	"github.com/cloud-wave-best-zizon/order-console/internal/view"
	"go.uber.org/zap"
)

// API is the subset of *client.Client the console drives.
type API interface {
	CreateOrder(ctx context.Context, userID int, items []int) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int) ([]domain.Order, error)
	SearchOrders(ctx context.Context, userID int, status domain.Status) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, orderID, userID int, status domain.Status, items []int) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID int) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int) error
	ListItems(ctx context.Context, orderID int) ([]domain.Item, error)
	AddItem(ctx context.Context, orderID, itemID int) (*domain.Item, error)
	UpdateItem(ctx context.Context, orderID, itemID int, detail string) (*domain.Item, error)
	DeleteItem(ctx context.Context, orderID, itemID int) error
}

var _ API = (*client.Client)(nil)

// Outcome is the result of one action: the payload on success, Err otherwise.
type Outcome struct {
	Action view.Action
	Order  *domain.Order
	Item   *domain.Item
	Orders []domain.Order
	Items  []domain.Item
	Err    error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

type Console struct {
	api    API
	logger *zap.Logger
}

func New(api API, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{api: api, logger: logger}
}

// Do runs an action against the current form state and applies the result.
// It is not safe for concurrent use with the same state.
func (c *Console) Do(ctx context.Context, a view.Action, s *view.State) Outcome {
	out := c.Execute(ctx, a, s.Capture())
	Apply(s, out)
	return out
}

// Execute parses the captured input and issues exactly one request. It does
// not touch any view-state, so it can run off the UI loop.
func (c *Console) Execute(ctx context.Context, a view.Action, snap view.Snapshot) Outcome {
	out := c.execute(ctx, a, snap)
	if out.Err != nil {
		c.logger.Info("Action failed",
			zap.Stringer("action", a),
			zap.Error(out.Err))
	} else {
		c.logger.Debug("Action succeeded", zap.Stringer("action", a))
	}
	return out
}

func (c *Console) execute(ctx context.Context, a view.Action, snap view.Snapshot) Outcome {
	out := Outcome{Action: a}

	switch a {
	case view.ActionCreateOrder:
		in, err := form.CreateInput(snap.Order)
		if err != nil {
			out.Err = err
			break
		}
		out.Order, out.Err = c.api.CreateOrder(ctx, in.UserID, in.Items)

	case view.ActionRetrieveOrder:
		orderID, err := form.Int(snap.Order, form.FieldOrderID)
		if err != nil {
			out.Err = err
			break
		}
		out.Order, out.Err = c.api.GetOrder(ctx, orderID)

	case view.ActionListOrders:
		userID, err := form.Int(snap.Order, form.FieldUserID)
		if err != nil {
			out.Err = err
			break
		}
		out.Orders, out.Err = c.api.ListOrders(ctx, userID)

	case view.ActionSearchOrders:
		userID, err := form.Int(snap.Order, form.FieldUserID)
		if err != nil {
			out.Err = err
			break
		}
		out.Orders, out.Err = c.api.SearchOrders(ctx, userID, form.Status(snap.Order))

	case view.ActionUpdateOrder:
		in, err := form.UpdateInput(snap.Order)
		if err != nil {
			out.Err = err
			break
		}
		out.Order, out.Err = c.api.UpdateOrder(ctx, in.OrderID, in.UserID, in.Status, in.Items)

	case view.ActionCancelOrder:
		orderID, err := form.Int(snap.Order, form.FieldOrderID)
		if err != nil {
			out.Err = err
			break
		}
		out.Order, out.Err = c.api.CancelOrder(ctx, orderID)

	case view.ActionDeleteOrder:
		orderID, err := form.Int(snap.Order, form.FieldOrderID)
		if err != nil {
			out.Err = err
			break
		}
		out.Err = c.api.DeleteOrder(ctx, orderID)

	case view.ActionListItems:
		orderID, err := form.Int(snap.Item, form.FieldOrderID)
		if err != nil {
			out.Err = err
			break
		}
		out.Items, out.Err = c.api.ListItems(ctx, orderID)

	case view.ActionAddItem:
		in, err := form.ItemRef(snap.Item)
		if err != nil {
			out.Err = err
			break
		}
		out.Item, out.Err = c.api.AddItem(ctx, in.OrderID, in.ItemID)

	case view.ActionUpdateItem:
		in, err := form.ItemRef(snap.Item)
		if err != nil {
			out.Err = err
			break
		}
		out.Item, out.Err = c.api.UpdateItem(ctx, in.OrderID, in.ItemID, in.Detail)

	case view.ActionDeleteItem:
		in, err := form.ItemRef(snap.Item)
		if err != nil {
			out.Err = err
			break
		}
		out.Err = c.api.DeleteItem(ctx, in.OrderID, in.ItemID)

	default:
		out.Err = fmt.Errorf("unsupported action %d", int(a))
	}
	return out
}

// Apply projects an outcome onto the view-state. The flash is emptied first;
// on failure the forms are left as they were.
func Apply(s *view.State, out Outcome) {
	s.Flash.Clear()

	if out.Err != nil {
		s.Flash.Error(client.Message(out.Err))
		return
	}

	switch out.Action {
	case view.ActionCreateOrder, view.ActionRetrieveOrder, view.ActionUpdateOrder, view.ActionCancelOrder:
		if out.Order != nil {
			form.PopulateOrder(s.Order, *out.Order)
		}
	case view.ActionDeleteOrder:
		s.Order.Clear()
	case view.ActionListOrders, view.ActionSearchOrders:
		tbl := view.OrderTable(out.Orders)
		s.Results = &tbl
		if len(out.Orders) > 0 {
			form.PopulateOrder(s.Order, out.Orders[0])
		}
	case view.ActionListItems:
		tbl := view.ItemTable(out.Items)
		s.Results = &tbl
		if len(out.Items) > 0 {
			form.PopulateItem(s.Item, out.Items[0])
		}
	case view.ActionAddItem, view.ActionUpdateItem:
		if out.Item != nil {
			form.PopulateItem(s.Item, *out.Item)
		}
	case view.ActionDeleteItem:
		s.Item.Clear()
	}
	s.Flash.Success()
}
