package config

import (
	"errors"
	"fmt"
	"net/netip"
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"k8s.io/apimachinery/pkg/util/validation"
)

var (
	backupWindowPattern      = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)
	maintenanceWindowPattern = regexp.MustCompile(`^(mon|tue|wed|thu|fri|sat|sun):([01]\d|2[0-3]):[0-5]\d-(mon|tue|wed|thu|fri|sat|sun):([01]\d|2[0-3]):[0-5]\d$`)
	dbIdentifierPattern      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,62}$`)
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if key := f.Tag.Get("key"); key != "" {
				return key
			}
			return f.Name
		})
		mustRegister(v, "dns_label", func(fl validator.FieldLevel) bool {
			return len(validation.IsDNS1123Label(fl.Field().String())) == 0
		})
		mustRegister(v, "dns_subdomain", func(fl validator.FieldLevel) bool {
			return len(validation.IsDNS1123Subdomain(fl.Field().String())) == 0
		})
		mustRegister(v, "db_identifier", func(fl validator.FieldLevel) bool {
			return dbIdentifierPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "backup_window", func(fl validator.FieldLevel) bool {
			return backupWindowPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "maintenance_window", func(fl validator.FieldLevel) bool {
			return maintenanceWindowPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks the configuration and returns every violation as ValidationErrors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if err := structValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &ValidationError{Field: fe.Field(), Message: describe(fe)})
		}
	}

	errs = append(errs, c.validateNetwork()...)
	errs = append(errs, c.validateCapacity()...)
	errs = append(errs, c.validateCredentials()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "cidrv4":
		return fmt.Sprintf("must be an IPv4 CIDR, got %v", fe.Value())
	case "dns_label":
		return fmt.Sprintf("must be a lowercase DNS label, got %q", fe.Value())
	case "dns_subdomain":
		return fmt.Sprintf("must be a lowercase DNS subdomain, got %q", fe.Value())
	case "db_identifier":
		return fmt.Sprintf("must start with a letter and contain only letters, digits and underscores, got %q", fe.Value())
	case "backup_window":
		return fmt.Sprintf("must have the form hh:mm-hh:mm, got %q", fe.Value())
	case "maintenance_window":
		return fmt.Sprintf("must have the form ddd:hh:mm-ddd:hh:mm, got %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func (c *Config) validateNetwork() ValidationErrors {
	switch n := c.Network.(type) {
	case CreateNew:
		prefix, err := netip.ParsePrefix(n.CIDR)
		switch {
		case err != nil:
			return ValidationErrors{{Field: "vpcCidr", Message: fmt.Sprintf("must be an IPv4 CIDR, got %q", n.CIDR)}}
		case !prefix.Addr().Is4():
			return ValidationErrors{{Field: "vpcCidr", Message: "only IPv4 networks are supported"}}
		case prefix.Bits() == 0:
			return ValidationErrors{{Field: "vpcCidr", Message: "prefix length must not be zero"}}
		}
	case ReuseExisting:
		if n.VPCID == "" {
			return ValidationErrors{{Field: "vpcId", Message: "must not be empty"}}
		}
	case nil:
		return ValidationErrors{{Field: "vpcCidr", Message: "network boundary is not set"}}
	default:
		return ValidationErrors{{Field: "vpcId", Message: fmt.Sprintf("unsupported network boundary %T", n)}}
	}
	return nil
}

func (c *Config) validateCapacity() ValidationErrors {
	var errs ValidationErrors
	check := func(field string, v fmt.Stringer, ok bool, msg string) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf("%s, got %s", msg, v)})
		}
	}
	minCap, maxCap := c.Database.MinCapacity, c.Database.MaxCapacity

	check("minCapacity", minCap, minCap.GreaterThanOrEqual(MinCapacityFloor), "must not be negative")
	check("maxCapacity", maxCap, maxCap.GreaterThan(decimal.Zero), "must be positive")
	check("maxCapacity", maxCap, maxCap.LessThanOrEqual(MaxCapacityCeiling), "must be at most "+MaxCapacityCeiling.String())
	check("minCapacity", minCap, minCap.Mod(CapacityStep).IsZero(), "must be a multiple of "+CapacityStep.String())
	check("maxCapacity", maxCap, maxCap.Mod(CapacityStep).IsZero(), "must be a multiple of "+CapacityStep.String())
	if minCap.GreaterThan(maxCap) {
		errs = append(errs, &ValidationError{
			Field:   "minCapacity",
			Message: fmt.Sprintf("must not exceed maxCapacity (%s > %s)", minCap, maxCap),
		})
	}
	return errs
}

func (c *Config) validateCredentials() ValidationErrors {
	if c.Credentials.Generate && c.Credentials.SecretRef != nil {
		return ValidationErrors{{Field: "passwordSecretRef", Message: "requires generatePassword: false"}}
	}
	return nil
}
