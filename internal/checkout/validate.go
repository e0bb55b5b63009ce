package checkout

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/markethub/storefront/internal/domain"
)

// shippingValidator drives the shipping form's struct tags. Field names in
// reported errors use the json tag so they line up with the form fields
// the shopper sees.
var shippingValidator = newShippingValidator()

func newShippingValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// shippingMessages maps form fields to their user-facing required-field
// messages.
var shippingMessages = map[string]string{
	"firstName": "First name is required",
	"lastName":  "Last name is required",
	"email":     "Email is required",
	"phone":     "Phone number is required",
	"address":   "Address is required",
	"city":      "City is required",
	"state":     "State is required",
	"zipCode":   "ZIP code is required",
	"country":   "Country is required",
}

// ValidateShippingAddress checks the shipping form. All failing fields are
// collected into a single ValidationError so the form can show every
// problem at once.
func ValidateShippingAddress(addr domain.ShippingAddress) error {
	verr := shippingValidator.Struct(addr)
	if verr == nil {
		return nil
	}

	fieldErrs, ok := verr.(validator.ValidationErrors)
	if !ok {
		return domain.Internal(verr, "checkout.submit_shipping", "address validation failed")
	}

	var err error
	for _, fe := range fieldErrs {
		msg := shippingMessages[fe.Field()]
		if fe.Tag() == "contains" {
			msg = "Invalid email address"
		}
		if msg == "" {
			msg = "Invalid value"
		}
		err = domain.AddFieldError(err, domain.StepShipping, fe.Field(), msg)
	}
	return err
}

// ValidatePaymentDetails checks the payment form. Card fields are only
// validated for the card method; wallet and pay-later methods carry no
// extra fields. Validation is format-only; no charge is attempted.
func ValidatePaymentDetails(d domain.PaymentDetails) error {
	if !d.Method.Valid() {
		return domain.NewValidationError("checkout.submit_payment", domain.StepPayment, "method", "Select a payment method")
	}
	if d.Method != domain.PaymentCard {
		return nil
	}

	var err error
	digits := stripNonDigits(d.CardNumber)
	switch {
	case digits == "":
		err = domain.AddFieldError(err, domain.StepPayment, "cardNumber", "Card number is required")
	case len(digits) < 16:
		err = domain.AddFieldError(err, domain.StepPayment, "cardNumber", "Invalid card number")
	}
	if strings.TrimSpace(d.CardName) == "" {
		err = domain.AddFieldError(err, domain.StepPayment, "cardName", "Cardholder name is required")
	}
	if d.ExpiryMonth == "" {
		err = domain.AddFieldError(err, domain.StepPayment, "expiryMonth", "Expiry month is required")
	}
	if d.ExpiryYear == "" {
		err = domain.AddFieldError(err, domain.StepPayment, "expiryYear", "Expiry year is required")
	}
	cvv := strings.TrimSpace(d.CVV)
	switch {
	case cvv == "":
		err = domain.AddFieldError(err, domain.StepPayment, "cvv", "CVV is required")
	case len(stripNonDigits(cvv)) != len(cvv) || len(cvv) < 3 || len(cvv) > 4:
		err = domain.AddFieldError(err, domain.StepPayment, "cvv", "Invalid CVV")
	}
	return err
}
