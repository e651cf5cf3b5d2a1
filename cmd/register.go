package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/signup"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Sign up without the terminal UI",
	Long: `Submit one registration using the same rules as the form: the password
and its repeat must match and be non-empty. Exits non-zero when the backend
rejects the request.

Example:
  signup register --username user1 --email user1@mail.com \
    --password P4ssword --password-repeat P4ssword`,
	RunE: runRegister,
}

var registerFields registration.Fields

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVar(&registerFields.Username, "username", "", "username")
	registerCmd.Flags().StringVar(&registerFields.Email, "email", "", "e-mail address")
	registerCmd.Flags().StringVar(&registerFields.Password, "password", "", "password")
	registerCmd.Flags().StringVar(&registerFields.PasswordRepeat, "password-repeat", "", "password again")
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if err := config.ValidateAPI(cfg.API); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	registrar, shutdown, err := newRegistrar(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	return register(cmd, registrar, registerFields)
}

// register drives one controller cycle and reports the outcome on cmd's
// output streams.
func register(cmd *cobra.Command, r registration.Registrar, fields registration.Fields) error {
	ctrl := registration.NewController()
	ctrl.SetFields(fields)

	if !ctrl.CanSubmit() {
		return fmt.Errorf("%w: password and password repeat must match and not be empty",
			registration.ErrRegistrationFailed)
	}

	switch ctrl.Submit(cmd.Context(), r) {
	case registration.StatusSucceeded:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), signup.Confirmation)
		return nil
	default:
		return fmt.Errorf("%w: %w", registration.ErrRegistrationFailed, ctrl.Err())
	}
}
