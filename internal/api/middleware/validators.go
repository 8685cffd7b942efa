package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fwpboutique/crystalshop/internal/checkout"
)

// RegisterValidators adds the storefront binding tags to gin's validator engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("tw_mobile", twMobile); err != nil {
		return fmt.Errorf("register tw_mobile: %w", err)
	}
	return nil
}

func twMobile(fl validator.FieldLevel) bool {
	return checkout.PhonePattern.MatchString(checkout.Sanitize(fl.Field().String(), checkout.KindNumber))
}
