package main

import (
	"encoding/json"

	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
	"github.com/spf13/cobra"
)

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route [route]",
		Short: "Print the view state and page a storefront route resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := ""
			if len(args) == 1 {
				route = args[0]
			}
			state, parsed := navigation.Navigate(route, nil)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"route": parsed.String(),
				"state": state,
				"page":  navigation.ResolveView(state),
			})
		},
	}
}
