package account

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"geniemetrics/internal/domain"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{4}( ?[0-9]{4}){2}( ?[0-9]{1,4})$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvcPattern        = regexp.MustCompile(`^[0-9]{3}$`)
)

// LoginRequest is the simulated sign-in form. The password is only
// checked for presence.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

type SignupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 120)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.AgreedToTerms, validation.Required.Error("please agree to the Terms of Service")),
	)
}

// CheckoutRequest is the simulated card form. Nothing is charged.
type CheckoutRequest struct {
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.CardNumber, validation.Required, validation.Length(12, 19), validation.Match(cardNumberPattern)),
		validation.Field(&r.Expiry, validation.Required, validation.Match(expiryPattern)),
		validation.Field(&r.CVC, validation.Required, validation.Match(cvcPattern)),
	)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
}

func nameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
