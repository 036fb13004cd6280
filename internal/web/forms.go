package web

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Form structs bind from POST bodies; binding tags handle presence and
// format, cross-record checks run in the handlers against the store.

type loginForm struct {
	Username   string `form:"username" binding:"required"`
	Password   string `form:"password" binding:"required"`
	RememberMe bool   `form:"remember_me"`
}

type registrationForm struct {
	Username        string `form:"username" binding:"required,max=64"`
	Email           string `form:"email" binding:"required,email,max=120"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

type editProfileForm struct {
	Username string `form:"username" binding:"required,max=64"`
	AboutMe  string `form:"about_me" binding:"max=140"`
}

type createAssetForm struct {
	AssetName   string `form:"asset_name" binding:"required,max=140"`
	AssetThesis string `form:"asset_thesis" binding:"required"`
	AssetType   string `form:"asset_type" binding:"required,max=140"`
	AssetClass  string `form:"asset_class" binding:"required,max=140"`
}

type createAssetUpdateForm struct {
	Asset   uint   `form:"asset" binding:"required"`
	Title   string `form:"title" binding:"required,max=140"`
	Content string `form:"content" binding:"required"`
}

// fieldErrors maps form field names to a user-visible message.
type fieldErrors map[string]string

// bindErrors converts a gin binding failure into per-field messages keyed by
// the form field name.
func bindErrors(err error) fieldErrors {
	errs := fieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "Invalid form submission."
		return errs
	}

	for _, fe := range verrs {
		name := snakeCase(fe.Field())
		switch fe.Tag() {
		case "required":
			errs[name] = "This field is required."
		case "email":
			errs[name] = "Enter a valid email address."
		case "max":
			errs[name] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		default:
			errs[name] = "Invalid value."
		}
	}
	return errs
}

// snakeCase maps a struct field name to its form field name, e.g.
// ConfirmPassword to confirm_password.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
