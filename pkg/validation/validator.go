package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	mustRegister("rotor_model", func(fl validator.FieldLevel) bool {
		return slices.Contains(enigma.RotorModels(), fl.Field().String())
	})
	mustRegister("reflector_model", func(fl validator.FieldLevel) bool {
		return slices.Contains(enigma.ReflectorModels(), fl.Field().String())
	})
	mustRegister("alphabet_letter", func(fl validator.FieldLevel) bool {
		return isAlphabetLetter(fl.Field().String())
	})
	mustRegister("plugboard", func(fl validator.FieldLevel) bool {
		_, err := enigma.NewPlugBoard(fl.Field().String())
		return err == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

func isAlphabetLetter(s string) bool {
	r := []rune(strings.ToUpper(s))
	if len(r) != 1 {
		return false
	}
	_, ok := enigma.IndexOf(r[0])
	return ok
}

// ValidateSettings checks a key before any machine is built and reports
// every problem it finds in user-facing terms.
func ValidateSettings(s *enigma.Settings) error {
	if s == nil {
		return errors.New("settings cannot be nil")
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateRotorOrder rejects keys that use the same wheel twice. A real
// Enigma I box holds one of each wheel, so a sheet that repeats a model
// cannot be set up on the machine even though the simulator would accept it.
func ValidateRotorOrder(s *enigma.Settings) error {
	cv := NewConfigValidator("Settings")
	seen := make(map[string]int, len(s.Rotors))
	for i, r := range s.Rotors {
		if j, dup := seen[r.Model]; dup {
			cv.Custom(fmt.Sprintf("Rotors[%d]", i), func() error {
				return fmt.Errorf("wheel %s already used in slot %d", r.Model, j)
			})
			continue
		}
		seen[r.Model] = i
	}
	return cv.Validate()
}

// formatValidationError converts validator errors into one message per
// failed field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "Settings.")
		value := e.Value()

		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s: field is required", field))
		case "min":
			errs = append(errs, fmt.Errorf("%s: must have at least %s entries", field, e.Param()))
		case "rotor_model":
			errs = append(errs, fmt.Errorf("%s: %w %q (known: %s)", field, enigma.ErrUnknownRotor, value, strings.Join(enigma.RotorModels(), ", ")))
		case "reflector_model":
			errs = append(errs, fmt.Errorf("%s: %w %q (known: %s)", field, enigma.ErrUnknownReflector, value, strings.Join(enigma.ReflectorModels(), ", ")))
		case "alphabet_letter":
			errs = append(errs, fmt.Errorf("%s: %w: %q is not a single letter A-Z", field, enigma.ErrInvalidSetting, value))
		case "plugboard":
			_, perr := enigma.NewPlugBoard(fmt.Sprint(value))
			errs = append(errs, fmt.Errorf("%s: %w", field, perr))
		default:
			errs = append(errs, fmt.Errorf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.Join(errs...)
}
