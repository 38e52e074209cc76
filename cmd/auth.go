package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finboard/internal/auth"
	"github.com/theirongolddev/finboard/internal/config"
	"github.com/theirongolddev/finboard/internal/rest"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagAuthEmail    string
	flagAuthPassword string
	flagAuthSignUp   bool
	flagAuthName     string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the REST backend (or sign up with --signup)",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke and forget the stored session",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who commands act as",
	RunE:  runAuthWhoami,
}

func init() {
	authLoginCmd.Flags().StringVar(&flagAuthEmail, "email", "", "Account email")
	authLoginCmd.Flags().StringVar(&flagAuthPassword, "password", "", "Password (prompted when empty)")
	authLoginCmd.Flags().BoolVar(&flagAuthSignUp, "signup", false, "Create the account first")
	authLoginCmd.Flags().StringVar(&flagAuthName, "name", "", "Display name stored on sign up")

	rootCmd.AddCommand(authLoginCmd, authLogoutCmd, authWhoamiCmd)
}

// restClient builds a client for the configured REST project.
func restClient(cfg config.Config, sess auth.Session) (*rest.Client, error) {
	if cfg.Backend.Type != config.BackendREST {
		return nil, fmt.Errorf("backend is %s; sign-in only applies to the rest backend", cfg.Backend.Type)
	}
	c := rest.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey, sess, newLogger())
	if c == nil {
		return nil, errors.New("rest backend needs backend.url and backend.anon_key (run `finboard setup`)")
	}
	return c, nil
}

func promptCredentials() error {
	var fields []huh.Field
	if flagAuthEmail == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&flagAuthEmail).
			Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return errors.New("enter an email address")
				}
				return nil
			}))
	}
	if flagAuthPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&flagAuthPassword).
			Validate(func(s string) error {
				if len(s) < 6 {
					return errors.New("at least 6 characters")
				}
				return nil
			}))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula()).Run()
}

func runAuthLogin(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := restClient(cfg, auth.Session{})
	if err != nil {
		return err
	}
	if err := promptCredentials(); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	var sess auth.Session
	if flagAuthSignUp {
		var meta map[string]string
		if flagAuthName != "" {
			meta = map[string]string{"name": flagAuthName}
		}
		sess, err = client.SignUp(ctx, flagAuthEmail, flagAuthPassword, meta)
		if errors.Is(err, rest.ErrConfirmationPending) {
			fmt.Println("  Account created. Confirm the address, then run `finboard login`.")
			return nil
		}
	} else {
		sess, err = client.SignIn(ctx, flagAuthEmail, flagAuthPassword)
	}
	if err != nil {
		return err
	}

	if err := auth.Save(sess); err != nil {
		return err
	}
	fmt.Printf("  Signed in as %s\n", sess.Email)
	if !sess.ExpiresAt.IsZero() {
		fmt.Printf("  Session expires %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func runAuthLogout(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := auth.Load()
	if err != nil {
		return err
	}
	if !sess.Present() {
		fmt.Println("  Not signed in.")
		return nil
	}

	if client, err := restClient(cfg, sess); err == nil {
		ctx, cancel := commandContext()
		defer cancel()
		if err := client.SignOut(ctx); err != nil {
			fmt.Printf("  Could not revoke the session remotely: %v\n", err)
		}
	}
	if err := auth.Clear(); err != nil {
		return err
	}
	fmt.Printf("  Signed out %s\n", sess.Email)
	return nil
}

func runAuthWhoami(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := auth.Resolve(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("  Backend: %s\n", cfg.Backend.Type)
	if !sess.Present() {
		fmt.Println("  User:    nobody (reads work, creates need a session)")
		return nil
	}
	if sess.Email != "" {
		fmt.Printf("  Email:   %s\n", sess.Email)
	}
	fmt.Printf("  User ID: %s\n", sess.UserID)
	if !sess.ExpiresAt.IsZero() {
		state := "valid"
		if sess.Expired(time.Now()) {
			state = "expired (run `finboard login`)"
		}
		fmt.Printf("  Session: %s until %s\n", state, sess.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
