package main

import (
	"github.com/cloud-wave-best-zizon/order-console/internal/tui"
	"github.com/cloud-wave-best-zizon/order-console/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := a.layout()
			if err != nil {
				return err
			}
			// Log lines would tear the alternate screen.
			con := a.newConsole(zap.NewNop())
			return tui.Run(cmd.Context(), con, view.NewState(layout))
		},
	}
}
