package main

import (
	"github.com/spf13/cobra"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/router"
	"github.com/target/admin-panel/internal/state"
)

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(router.PathDashboard); err != nil {
				return err
			}
			h := state.NewDashboard(a.api)
			stats, err := h.Fetch(cmd.Context())
			if err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			return a.render(stats)
		},
	}
}

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Read or change the panel appearance"}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard("/settings"); err != nil {
				return err
			}
			h := state.NewSettings(a.api.Settings())
			s, err := h.Fetch(cmd.Context())
			if err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			return a.render(s)
		},
	}

	var req model.UpdateSettingsRequest
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the settings; flags left out keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard("/settings"); err != nil {
				return err
			}
			h := state.NewSettings(a.api.Settings())
			cur, err := h.Fetch(cmd.Context())
			if err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			keep(cmd, map[string]*string{
				"theme": &req.Theme,
				"font":  &req.Font,
				"logo":  &req.Logo,
			}, map[string]string{
				"theme": cur.Theme,
				"font":  cur.Font,
				"logo":  cur.Logo,
			})
			saved, err := h.Save(cmd.Context(), req)
			if err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			return a.render(saved)
		},
	}
	set.Flags().StringVar(&req.Theme, "theme", "", "Color theme")
	set.Flags().StringVar(&req.Font, "font", "", "Font family")
	set.Flags().StringVar(&req.Logo, "logo", "", "Logo URL")

	cmd.AddCommand(get, set)
	return cmd
}
