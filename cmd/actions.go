package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
	"github.com/cloud-wave-best-zizon/order-console/internal/view"
	"github.com/spf13/cobra"
)

// errActionFailed is returned after the error flash has been printed.
var errActionFailed = errors.New("action failed")

type actionCmd struct {
	use    string
	short  string
	action view.Action
	fields []string
}

var fieldFlags = map[string]string{
	form.FieldOrderID:    "order-id",
	form.FieldUserID:     "user-id",
	form.FieldItems:      "items",
	form.FieldStatus:     "status",
	form.FieldItemID:     "item-id",
	form.FieldItemDetail: "detail",
}

var fieldUsage = map[string]string{
	form.FieldOrderID:    "order id",
	form.FieldUserID:     "user id",
	form.FieldItems:      "comma-separated item ids",
	form.FieldStatus:     "status symbol or code (created, completed, cancelled)",
	form.FieldItemID:     "item id",
	form.FieldItemDetail: "item detail text",
}

func newOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create, read, update and delete orders",
	}
	for _, ac := range []actionCmd{
		{"create", "Create an order", view.ActionCreateOrder, []string{form.FieldUserID, form.FieldItems}},
		{"get", "Retrieve an order", view.ActionRetrieveOrder, []string{form.FieldOrderID}},
		{"list", "List a user's orders", view.ActionListOrders, []string{form.FieldUserID}},
		{"search", "Search a user's orders by status", view.ActionSearchOrders, []string{form.FieldUserID, form.FieldStatus}},
		{"update", "Replace an order", view.ActionUpdateOrder, []string{form.FieldOrderID, form.FieldUserID, form.FieldItems, form.FieldStatus}},
		{"cancel", "Cancel an order", view.ActionCancelOrder, []string{form.FieldOrderID}},
		{"delete", "Delete an order", view.ActionDeleteOrder, []string{form.FieldOrderID}},
	} {
		cmd.AddCommand(ac.command(a))
	}
	return cmd
}

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of an order",
	}
	for _, ac := range []actionCmd{
		{"list", "List the items of an order", view.ActionListItems, []string{form.FieldOrderID}},
		{"add", "Add an item to an order", view.ActionAddItem, []string{form.FieldOrderID, form.FieldItemID}},
		{"update", "Set an item's detail", view.ActionUpdateItem, []string{form.FieldOrderID, form.FieldItemID, form.FieldItemDetail}},
		{"delete", "Remove an item from an order", view.ActionDeleteItem, []string{form.FieldOrderID, form.FieldItemID}},
	} {
		cmd.AddCommand(ac.command(a))
	}
	return cmd
}

func (ac actionCmd) command(a *app) *cobra.Command {
	values := make(map[string]*string, len(ac.fields))
	cmd := &cobra.Command{
		Use:   ac.use,
		Short: ac.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := a.layout()
			if err != nil {
				return err
			}
			state := view.NewState(layout)
			target := state.Order
			if ac.action.UsesItemForm() {
				target = state.Item
			}
			for field, v := range values {
				if cmd.Flags().Changed(fieldFlags[field]) {
					target.Set(field, formValue(field, *v))
				}
			}

			out := a.newConsole(a.logger).Do(cmd.Context(), ac.action, state)
			fmt.Fprint(cmd.OutOrStdout(), view.RenderResult(state, ac.action, view.DefaultStyles()))
			if out.Failed() {
				return errActionFailed
			}
			return nil
		},
	}
	for _, field := range ac.fields {
		values[field] = cmd.Flags().String(fieldFlags[field], "", fieldUsage[field])
	}
	return cmd
}

// formValue normalizes a flag into what a user would type in the form. Status
// accepts a code as well; anything unparseable is passed through unchanged.
func formValue(field, v string) string {
	if field != form.FieldStatus {
		return v
	}
	s, err := domain.ParseStatus(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return domain.ToSymbol(s)
}
