package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// errSessionFailed reports a failed session operation; the backend's message
// is kept in the session state and shown in the prompt.
var errSessionFailed = errors.New("operation failed")

func (a *App) sessionError(op string) error {
	if msg := a.session.State().Error; msg != "" {
		return fmt.Errorf("%s %w: %s", op, errSessionFailed, msg)
	}
	return fmt.Errorf("%s %w", op, errSessionFailed)
}

// Login prompts for credentials and signs in. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}
	if err := validateCredentials(creds); err != nil {
		return err
	}
	if !a.session.Login(ctx, creds) {
		return a.sessionError("login")
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.session.State().User.Name)
	return nil
}

// Register prompts for the registration form, validates it (normalizing the
// phone number) and creates the account.
func (a *App) Register(ctx context.Context) error {
	var (
		data models.RegisterData
		err  error
	)
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter full name", &data.Name},
		{"Enter email", &data.Email},
		{"Enter phone number", &data.Phone},
		{"Enter ICAN membership id (optional)", &data.MembershipID},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}

	password, err := getPassword("Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	data.Password = string(password)

	if err := validateRegistration(&data); err != nil {
		return err
	}
	if !a.session.Register(ctx, data) {
		return a.sessionError("registration")
	}
	fmt.Fprintln(a.out, "Account created, you are signed in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if !a.session.ForgotPassword(ctx, models.ForgotPasswordData{Email: email}) {
		return a.sessionError("password reset request")
	}
	fmt.Fprintln(a.out, "If the account exists, a reset code has been sent.")
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter the reset code", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Choose a new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	data := models.ResetPasswordData{Token: token, NewPassword: string(password)}
	if err := validateReset(data); err != nil {
		return err
	}
	if !a.session.ResetPassword(ctx, data) {
		return a.sessionError("password reset")
	}
	fmt.Fprintln(a.out, "Password changed, you can log in now.")
	return nil
}

func (a *App) ClearError() {
	a.session.ClearError()
}

// WhoAmI prints the signed-in member.
func (a *App) WhoAmI(_ context.Context) error {
	u := a.session.State().User
	if u == nil {
		return common.ErrUnauthorized
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	if u.Phone != "" {
		fmt.Fprintf(a.out, "  phone:      %s\n", u.Phone)
	}
	if u.MembershipID != "" {
		fmt.Fprintf(a.out, "  membership: %s", u.MembershipID)
		if u.MembershipTier != "" {
			fmt.Fprintf(a.out, " (%s)", u.MembershipTier)
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintf(a.out, "  balance:    %.2f\n", u.Balance)
	fmt.Fprintf(a.out, "  points:     %d\n", u.Points)
	return nil
}
