package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikbrunner/termhome/internal/broadcast"
	"github.com/nikbrunner/termhome/internal/homepage"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/prefs"
	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect or reset the saved section layout",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the section layout without changing stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			engine := homepage.New(store, logging.New("homepage"))
			printLayout(cmd.OutOrStdout(), engine.Peek(homepage.Catalogue))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default section layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			printLayout(cmd.OutOrStdout(), layoutEngine(store).Reset())
			return nil
		},
	})

	return cmd
}

func printLayout(w io.Writer, l homepage.Layout) {
	join := func(ids []homepage.SectionID) string {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = string(id)
		}
		if len(parts) == 0 {
			return "(empty)"
		}
		return strings.Join(parts, ", ")
	}
	fmt.Fprintf(w, "left:  %s\n", join(l.Left))
	fmt.Fprintf(w, "right: %s\n", join(l.Right))
}

func newMinimizeCmd(app *App) *cobra.Command {
	names := make([]string, len(prefs.Components))
	for i, c := range prefs.Components {
		names[i] = string(c)
	}

	return &cobra.Command{
		Use:       "minimize <component>",
		Short:     "Toggle a header component between minimized and shown",
		Long:      "Components: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prefs.ParseComponent(args[0])
			if err != nil {
				return err
			}

			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			registry := prefs.NewRegistry(store, broadcast.New(), logging.New("prefs"))
			state := "shown"
			if registry.Toggle(c) {
				state = "minimized"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c, state)
			return nil
		},
	}
}
