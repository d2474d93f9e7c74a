package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Sign in, register, sign out, and inspect the cached session.`,
}

// authLoginCmd signs in and caches the session token
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and cache the session token",
	Long: `Sign in against the backend and cache the session token locally.

Examples:
  edudash auth login --email teacher@school.edu --password mypass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		app, err := newApp(false)
		if err != nil {
			return err
		}

		authSession, err := app.client.SignIn(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		if err := saveStoredAuth(config.Dir(), storedAuth{
			AccessToken:  authSession.AccessToken,
			RefreshToken: authSession.RefreshToken,
			Email:        authSession.User.Email,
			UserID:       authSession.User.ID,
		}); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		fmt.Printf("Signed in as %s\n", authSession.User.Email)
		return nil
	},
}

// authRegisterCmd registers a new account and signs it in
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account with the backend. The backend creates the matching
profile row from the name and role, and the new session is cached locally.

Examples:
  edudash auth register --email new@school.edu --password mypass --full-name "New User"
  edudash auth register --email new@school.edu --password mypass --full-name "New User" --role teacher`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		fullName, _ := cmd.Flags().GetString("full-name")
		roleName, _ := cmd.Flags().GetString("role")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}
		if fullName == "" {
			return fmt.Errorf("--full-name is required")
		}
		role := backend.Role(roleName)
		if !role.Valid() {
			return fmt.Errorf("--role must be one of admin, teacher, student, parent")
		}

		app, err := newApp(false)
		if err != nil {
			return err
		}

		authSession, err := app.client.SignUp(cmd.Context(), email, password, backend.SignUpMetadata{
			FullName: fullName,
			Role:     role,
		})
		if err != nil {
			return err
		}

		if err := saveStoredAuth(config.Dir(), storedAuth{
			AccessToken:  authSession.AccessToken,
			RefreshToken: authSession.RefreshToken,
			Email:        authSession.User.Email,
			UserID:       authSession.User.ID,
		}); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		fmt.Println("Registration successful!")
		fmt.Printf("Signed in as %s (%s)\n", authSession.User.Email, role)
		return nil
	},
}

// authLogoutCmd clears the cached session
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the cached session",
	Long: `Sign out and clear the cached session.

The local session is always cleared, even when the backend cannot be
reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}

		if auth, err := loadStoredAuth(config.Dir()); err == nil {
			app.client.SetToken(auth.AccessToken)
			if err := app.client.SignOut(cmd.Context()); err != nil {
				app.logger.WithError(err).Warn("provider sign-out failed; clearing local session anyway")
			}
		}

		if err := clearStoredAuth(config.Dir()); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Println("Signed out.")
		return nil
	},
}

// authStatusCmd shows the cached session's validity
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show whether a cached session exists and whether the backend still
accepts it.

Examples:
  edudash auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := loadStoredAuth(config.Dir())
		if err != nil {
			fmt.Println("Not signed in.")
			fmt.Println("Use 'edudash auth login' to authenticate.")
			return nil
		}

		app, err := newApp(false)
		if err != nil {
			return err
		}
		app.client.SetToken(auth.AccessToken)

		user, err := app.client.CurrentUser(cmd.Context())
		if err != nil {
			fmt.Println("Stored session was rejected by the backend.")
			fmt.Println("Use 'edudash auth login' to sign in again.")
			return nil
		}

		fmt.Println("Signed in")
		fmt.Printf("User ID: %s\n", user.ID)
		fmt.Printf("Email:   %s\n", user.Email)

		if profile, err := app.catalog.ProfileByID(cmd.Context(), user.ID); err == nil && profile != nil {
			fmt.Printf("Name:    %s\n", profile.FullName)
			fmt.Printf("Role:    %s\n", profile.Role)
		}
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")

	authRegisterCmd.Flags().String("email", "", "account email")
	authRegisterCmd.Flags().String("password", "", "account password (at least 6 characters)")
	authRegisterCmd.Flags().String("full-name", "", "full name for the profile")
	authRegisterCmd.Flags().String("role", "student", "role: admin, teacher, student, or parent")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	rootCmd.AddCommand(authCmd)
}
