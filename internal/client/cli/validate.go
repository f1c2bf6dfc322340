package cli

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/common"
)

// DefaultPhoneRegion is used for numbers entered without a country code.
const DefaultPhoneRegion = "NG"

const minPasswordLen = 6

func invalid(err error) error {
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

func validateCredentials(c models.Credentials) error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

// validateRegistration checks d and rewrites its phone number to E.164.
func validateRegistration(d *models.RegisterData) error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&d.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&d.Password, validation.Required, validation.Length(minPasswordLen, 100)),
		validation.Field(&d.Phone, validation.Required),
		validation.Field(&d.MembershipID, validation.Length(0, 32), is.Alphanumeric),
	)
	if err != nil {
		return invalid(err)
	}
	phone, err := normalizePhone(d.Phone)
	if err != nil {
		return err
	}
	d.Phone = phone
	return nil
}

func validateEmail(email string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return invalid(fmt.Errorf("email: %w", err))
	}
	return nil
}

func validateReset(d models.ResetPasswordData) error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Token, validation.Required),
		validation.Field(&d.NewPassword, validation.Required, validation.Length(minPasswordLen, 100)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

// normalizePhone parses raw in DefaultPhoneRegion and formats it as E.164.
func normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid(errors.New("phone: cannot be blank"))
	}
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return "", invalid(fmt.Errorf("phone: %w", err))
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", invalid(errors.New("phone: not a valid number"))
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
