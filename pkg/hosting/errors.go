package hosting

import "fmt"

// Reason classifies a configuration resolution failure.
type Reason string

const (
	// InvalidSkuForTier indicates a SKU name outside the allowed set for the
	// selected tier (e.g. "Y1" under FlexConsumption).
	InvalidSkuForTier Reason = "InvalidSkuForTier"

	// MissingRequiredReference indicates a cross-resource reference required
	// for the selected branch is absent (e.g. identity ID for Flex Consumption
	// deployment storage).
	MissingRequiredReference Reason = "MissingRequiredReference"

	// IncompatibleFieldForTier indicates a Flex-only or classic-only field was
	// supplied against the wrong tier.
	IncompatibleFieldForTier Reason = "IncompatibleFieldForTier"

	// InvalidParameterValue indicates a parameter outside its allowed value
	// set (e.g. instance memory not in {2048, 4096}).
	InvalidParameterValue Reason = "InvalidParameterValue"
)

// ConfigurationError is returned when a resolution call cannot produce a
// valid configuration document. Resolution is all-or-nothing: no partial
// document is returned alongside an error.
type ConfigurationError struct {
	Reason Reason
	Field  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Reason, e.Field, e.Detail)
}

func newError(reason Reason, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Reason: reason,
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
	}
}
