package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aptbill/client/internal/api"
	"aptbill/client/internal/session"
	"aptbill/client/internal/state"
)

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewAuth(a.auth, a.sessions)
			if err := st.Login(runCtx(), args[0], password); err != nil {
				return errors.New(state.Message("log in", err))
			}

			sess, _ := st.Current().Value()
			fmt.Printf("logged in as %s (%s)\n", sess.Username, sess.Role)

			// Any push token registered before login gets re-attached
			// to the new session.
			if token, ok := a.sessions.FCMToken(); ok {
				if _, err := a.auth.RegisterPushToken(runCtx(), token); err != nil {
					a.log.Warn().Err(err).Msg("push token re-registration failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			sess, ok := a.sessions.Session()
			if !ok {
				fmt.Println("not logged in")
				return nil
			}

			fmt.Printf("user:      %s\n", sess.Username)
			fmt.Printf("role:      %s\n", sess.Role)
			fmt.Printf("apartment: %s\n", orDash(sess.ApartmentID))
			if exp, err := session.TokenExpiry(sess.Token); err == nil {
				fmt.Printf("token exp: %s\n", exp.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var password, houseName, houseAddress, houseDescription string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a house together with its first admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			res, err := a.auth.RegisterHouseAdmin(runCtx(), api.RegisterHouseAdminInput{
				Username:         args[0],
				Password:         password,
				HouseName:        houseName,
				HouseAddress:     houseAddress,
				HouseDescription: optional(houseDescription),
			})
			if err != nil {
				return errors.New(state.Message("register", err))
			}
			fmt.Printf("registered %s as admin of %q\n", res.User.Username, res.House.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&houseName, "house-name", "", "house name")
	cmd.Flags().StringVar(&houseAddress, "house-address", "", "house address")
	cmd.Flags().StringVar(&houseDescription, "house-description", "", "house description")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("house-name")
	_ = cmd.MarkFlagRequired("house-address")
	return cmd
}

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Manage the push notification token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "register <token>",
		Short: "Save a push token locally and register it with the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.sessions.SaveFCMToken(args[0]); err != nil {
				return err
			}
			msg, err := a.auth.RegisterPushToken(runCtx(), args[0])
			if err != nil {
				return errors.New(state.Message("register push token", err))
			}
			fmt.Println(msg.Message)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unregister",
		Short: "Remove the push token locally and from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			token, ok := a.sessions.FCMToken()
			if !ok {
				fmt.Println("no push token saved")
				return nil
			}
			if _, err := a.auth.UnregisterPushToken(runCtx(), token); err != nil {
				return errors.New(state.Message("unregister push token", err))
			}
			if err := a.sessions.ClearFCMToken(); err != nil {
				return err
			}
			fmt.Println("push token removed")
			return nil
		},
	})

	return cmd
}
