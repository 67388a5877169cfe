package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/views"
)

var (
	credName     string
	credEmail    string
	credPassword string
)

var errSignupUnconfirmed = errors.New("signup was not confirmed by the store")

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a store account",
	Args:  cobra.NoArgs,
	RunE:  runSignup,
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and keep the session locally",
	Args:  cobra.NoArgs,
	RunE:  runSignin,
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out, forget the session and empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runSignout,
}

func credentials() models.Credentials {
	return models.Credentials{Name: credName, Email: credEmail, Password: credPassword}
}

func runSignup(cmd *cobra.Command, args []string) error {
	creds := credentials()
	user, err := shop.client.Signup(cmd.Context(), creds)
	render(cmd.OutOrStdout(), views.SignupResult(user, creds, err))
	if err == nil && user.Email != creds.Email {
		err = errSignupUnconfirmed
	}
	return shown(err)
}

func runSignin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	session, err := shop.client.Signin(ctx, credentials())
	if err == nil {
		err = shop.auth.Authenticate(ctx, session)
	}
	render(cmd.OutOrStdout(), views.SigninResult(session, err))
	return shown(err)
}

func runSignout(cmd *cobra.Command, args []string) error {
	err := shop.auth.Signout(cmd.Context())
	if err != nil {
		shop.logger.Warn("⚠️ signout incomplete", zap.Error(err))
		render(cmd.OutOrStdout(), views.Base("Sign Out", "", views.ErrorBox(err)))
		return shown(err)
	}
	render(cmd.OutOrStdout(), views.Base("Sign Out", "", "Signed out. See you soon!"))
	return nil
}
