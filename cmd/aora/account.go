package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sudatra/aora/internal/domain"
	"golang.org/x/term"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Long: `Create a new account, sign in and create its profile.

The password is prompted for without echo.

Examples:
  aora signup --email alice@example.com --username alice`,
	RunE: withApp(runSignup),
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with email and password",
	RunE:  withApp(runSignin),
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "End the current session",
	RunE:  withApp(runSignout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	RunE:  withApp(runWhoami),
}

func init() {
	signupCmd.Flags().String("email", "", "account email")
	signupCmd.Flags().String("username", "", "display name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("username")

	signinCmd.Flags().String("email", "", "account email")
	_ = signinCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runSignup(cmd *cobra.Command, args []string, a *app) error {
	email, _ := cmd.Flags().GetString("email")
	username, _ := cmd.Flags().GetString("username")

	password, err := readPassword(cmd.OutOrStdout(), os.Stdin)
	if err != nil {
		return err
	}

	profile, err := a.backend.CreateUser(context.Background(), email, password, username)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Welcome, %s!\n", profile.Username)
	return nil
}

func runSignin(cmd *cobra.Command, args []string, a *app) error {
	email, _ := cmd.Flags().GetString("email")

	password, err := readPassword(cmd.OutOrStdout(), os.Stdin)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := a.backend.SignIn(ctx, email, password); err != nil {
		return err
	}

	profile, err := a.backend.GetCurrentUser(ctx)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Signed in")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Signed in as %s\n", profile.Username)
	return nil
}

func runSignout(cmd *cobra.Command, args []string, a *app) error {
	if !a.client.HasSession() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
		return nil
	}
	if err := a.backend.SignOut(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string, a *app) error {
	profile, err := a.backend.GetCurrentUser(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrProfileNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		return err
	}

	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "USERNAME\t%s\n", profile.Username)
	fmt.Fprintf(w, "EMAIL\t%s\n", profile.Email)
	fmt.Fprintf(w, "PROFILE\t%s\n", profile.ID)
	fmt.Fprintf(w, "ACCOUNT\t%s\n", profile.AccountID)
	fmt.Fprintf(w, "AVATAR\t%s\n", profile.AvatarURL)
	return w.Flush()
}

// readPassword prompts for a password. Input is hidden when in is a terminal.
func readPassword(out io.Writer, in *os.File) (string, error) {
	fmt.Fprint(out, "Password: ")

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		passwordBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(out) // Add newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(passwordBytes), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
