package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"worldexplorer/internal/client/session"
)

func newRegisterCmd(cfg *rootConfig) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if name == "" {
				if name, err = prompt(in, out, "Name"); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = prompt(in, out, "Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword(in, out)
			if err != nil {
				return err
			}

			store, err := cfg.store()
			if err != nil {
				return err
			}
			if err := store.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			fmt.Fprintf(out, "Welcome, %s!\n", store.User().Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLoginCmd(cfg *rootConfig) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if email == "" {
				if email, err = prompt(in, out, "Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword(in, out)
			if err != nil {
				return err
			}

			store, err := cfg.store()
			if err != nil {
				return err
			}
			if err := store.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(out, "Logged in as %s <%s>\n", store.User().Name, store.User().Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newMeCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := cfg.store()
			if err != nil {
				return err
			}
			if err := store.Start(cmd.Context()); err != nil {
				if errors.Is(err, session.ErrSessionExpired) {
					return errors.New(store.Err())
				}
				return err
			}
			if !store.IsAuthenticated() {
				return errors.New("not logged in")
			}

			u := store.User()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", u.Name)
			fmt.Fprintf(out, "Email:   %s\n", u.Email)
			fmt.Fprintf(out, "Joined:  %s\n", u.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
}

func newLogoutCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := cfg.store()
			if err != nil {
				return err
			}
			if err := store.Logout(); err != nil {
				return err
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}
