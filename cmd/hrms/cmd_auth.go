package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jrsteele09/go-hrms-client/auth"
	"github.com/jrsteele09/go-hrms-client/token"
	"github.com/jrsteele09/go-hrms-client/users"
	"github.com/spf13/cobra"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var creds auth.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Log in to the authentication service. The returned token, role and
username are stored in the session file and sent with every later command.
The password is read from stdin when --password is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				pw, err := promptLine(opts.in, opts.errOut, "Password: ")
				if err != nil {
					return err
				}
				creds.Password = pw
			}

			resp, err := opts.app.auth.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			home := opts.app.auth.HomePath()
			err = opts.render(resp, func(w io.Writer) {
				fmt.Fprintf(w, "Logged in as %s (%s)\n", resp.Username, roleLabel(users.RoleType(resp.Role)))
			})
			opts.app.navigator.Navigate(home)
			return err
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Account password")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.app.auth.Logout()
			return nil
		},
	}
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var (
		reg  users.Registration
		role string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" {
				parsed, err := users.ParseRole(role)
				if err != nil {
					return err
				}
				reg.Role = parsed
			}
			if reg.Password == "" {
				pw, err := promptLine(opts.in, opts.errOut, "Password: ")
				if err != nil {
					return err
				}
				reg.Password = pw
			}

			resp, err := opts.app.auth.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			return opts.render(resp, func(w io.Writer) {
				msg := resp.Message
				if msg == "" {
					msg = "Registration successful"
				}
				fmt.Fprintln(w, msg)
			})
		},
	}
	cmd.Flags().StringVarP(&reg.Username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&reg.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "Password (8+ chars, upper, lower and a digit)")
	cmd.Flags().StringVar(&role, "role", "", "Role: employee or manager")
	return cmd
}

type whoamiView struct {
	Authenticated bool       `json:"authenticated" yaml:"authenticated"`
	Username      string     `json:"username,omitempty" yaml:"username,omitempty"`
	Role          string     `json:"role,omitempty" yaml:"role,omitempty"`
	Home          string     `json:"home" yaml:"home"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	Expired       bool       `json:"expired,omitempty" yaml:"expired,omitempty"`
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred := opts.app.store.Credential()
			view := whoamiView{
				Authenticated: opts.app.store.IsAuthenticated(),
				Username:      cred.Username,
				Role:          string(cred.Role),
				Home:          opts.app.auth.HomePath(),
			}
			if claims, err := token.ParseClaims(cred.Token); err == nil && !claims.ExpiresAt.IsZero() {
				exp := claims.ExpiresAt
				view.ExpiresAt = &exp
				view.Expired = claims.Expired()
			}

			return opts.render(view, func(w io.Writer) {
				if !view.Authenticated {
					fmt.Fprintln(w, "Not logged in")
					return
				}
				field(w, "Username", view.Username)
				field(w, "Role", roleLabel(cred.Role))
				field(w, "Home", view.Home)
				if view.ExpiresAt != nil {
					state := "valid"
					if view.Expired {
						state = "expired"
					}
					field(w, "Token", fmt.Sprintf("%s until %s", state, view.ExpiresAt.Local().Format(time.RFC1123)))
				}
			})
		},
	}
}

func newProfileCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the profile of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.app.auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(p, func(w io.Writer) { printProfile(w, p) })
		},
	}
}

func printProfile(w io.Writer, p *auth.Profile) {
	field(w, "Username", p.Username)
	field(w, "Name", strings.TrimSpace(p.FirstName+" "+p.LastName))
	field(w, "Email", p.Email)
	field(w, "Role", roleLabel(p.Role))
}

// roleLabel drops the ROLE_ prefix for display.
func roleLabel(r users.RoleType) string {
	return strings.TrimPrefix(string(r), "ROLE_")
}

func promptLine(in io.Reader, prompt io.Writer, label string) (string, error) {
	fmt.Fprint(prompt, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
