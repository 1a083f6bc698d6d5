// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingRequiredConfig marks a required setting that was not provided
var ErrMissingRequiredConfig = errors.New("missing required configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// rule is a check that struct tags cannot express
type rule func(cfg *Config) error

// Validate checks struct tags first, then the cross field rules for the
// current environment.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return describe(err)
	}

	rules := []rule{checkDriver, checkLocationPrefixes, checkOrigins}
	if c.IsProduction() {
		rules = append(rules, checkProduction)
	}
	for _, r := range rules {
		if err := r(c); err != nil {
			return err
		}
	}
	return nil
}

// describe turns the first field failure into a readable error
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	name := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, name)
	case "gtefield":
		return fmt.Errorf("%s must be >= %s", name, fe.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", name, fe.Param())
	case "min":
		return fmt.Errorf("%s needs at least %s entry", name, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of %s, got %q", name, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", name, fe.Tag())
	}
}

func checkDriver(c *Config) error {
	switch c.Documents.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("%w: Database.Host and Database.Name", ErrMissingRequiredConfig)
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("%w: Mongo.URI and Mongo.Database", ErrMissingRequiredConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown documents driver %q", c.Documents.Driver)
	}
	return nil
}

// checkLocationPrefixes rejects prefixes that would break <prefix>-NN codes
func checkLocationPrefixes(c *Config) error {
	for category, prefix := range c.Inventory.LocationPrefixes {
		if strings.ContainsAny(prefix, "- ") {
			return fmt.Errorf("location prefix for %s must not contain dashes or spaces", category)
		}
	}
	return nil
}

func checkOrigins(c *Config) error {
	if !c.IsProduction() {
		return nil
	}
	for _, origin := range c.Security.AllowedOrigins {
		if origin == "*" {
			return errors.New("wildcard origin (*) not allowed in production")
		}
	}
	return nil
}

func checkProduction(c *Config) error {
	switch c.Documents.Driver {
	case DriverMemory:
		return errors.New("memory document store is not allowed in production")
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("%w: Database.Password", ErrMissingRequiredConfig)
		}
		if c.Database.SSLMode == "disable" {
			return errors.New("database SSL must be enabled in production")
		}
	}

	if !c.Security.SecureHeaders {
		return errors.New("secure headers must be enabled in production")
	}
	if c.Server.TLSEnabled && (c.Server.TLSCertFile == "" || c.Server.TLSKeyFile == "") {
		return errors.New("TLS cert and key files must be provided when TLS is enabled")
	}
	if c.Notifications.SMTPHost != "" && len(c.Notifications.AlertTo) == 0 {
		return fmt.Errorf("%w: ALERT_TO is required when SMTP is configured", ErrMissingRequiredConfig)
	}
	return nil
}
