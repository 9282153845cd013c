package main

import (
	"github.com/spf13/cobra"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/forms"
	"github.com/target/admin-panel/internal/router"
)

func (a *app) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard(router.PathLogin); err != nil {
				return err
			}
			if password == "" && username != "" {
				var err error
				if password, err = a.prompt("Password"); err != nil {
					return err
				}
			}
			err := a.session.Login(cmd.Context(), username, password)
			if err != nil {
				return holderError(err, a.session.Snapshot().Error)
			}
			user := a.session.Snapshot().User
			a.printf("Signed in as %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password; prompted when omitted")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			a.printf("Signed out\n")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard("/profile"); err != nil {
				return err
			}
			if remote {
				user, err := a.api.Me(cmd.Context())
				if err != nil {
					return err
				}
				return a.render(user)
			}
			return a.render(a.session.Snapshot().User)
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Fetch the user from the server instead of the session file")
	return cmd
}

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Manage your own account"}

	var name, email, avatar string
	update := &cobra.Command{
		Use:   "update",
		Short: "Edit your name, email or avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard("/profile"); err != nil {
				return err
			}
			req := model.UpdateProfileRequest{}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("email") {
				req.Email = &email
			}
			if flags.Changed("avatar") {
				req.Avatar = &avatar
			}
			patch := req.ToUserUpdate()
			if err := patch.Validate(); err != nil {
				return err
			}
			user, err := a.session.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return holderError(err, a.session.Snapshot().Error)
			}
			return a.render(user)
		},
	}
	update.Flags().StringVar(&name, "name", "", "Display name")
	update.Flags().StringVar(&email, "email", "", "Email address")
	update.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	cmd.AddCommand(update)
	return cmd
}

func (a *app) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "password", Short: "Manage your password"}

	var form forms.ChangePassword
	change := &cobra.Command{
		Use:   "change",
		Short: "Rotate your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard("/change-password"); err != nil {
				return err
			}
			for _, f := range []struct {
				dst   *string
				label string
			}{
				{&form.CurrentPassword, "Current password"},
				{&form.NewPassword, "New password"},
				{&form.ConfirmPassword, "Confirm new password"},
			} {
				if *f.dst != "" {
					continue
				}
				v, err := a.prompt(f.label)
				if err != nil {
					return err
				}
				*f.dst = v
			}
			if err := a.session.ChangePassword(cmd.Context(), form); err != nil {
				return holderError(err, a.session.Snapshot().Error)
			}
			a.printf("Password changed\n")
			return nil
		},
	}
	change.Flags().StringVar(&form.CurrentPassword, "current", "", "Current password; prompted when omitted")
	change.Flags().StringVar(&form.NewPassword, "new", "", "New password; prompted when omitted")
	change.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "New password again; prompted when omitted")
	cmd.AddCommand(change)
	return cmd
}
