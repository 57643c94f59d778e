package core

import "strings"

// ApplyOptional overwrites dst with a supplied patch value. nil leaves dst unchanged, an empty
// string clears it.
func ApplyOptional(dst *string, patch *string) {
	if patch != nil {
		*dst = strings.TrimSpace(*patch)
	}
}

// ApplyRequired overwrites dst with a supplied patch value. nil leaves dst unchanged, a blank value
// is recorded as a field error in fields.
func ApplyRequired(dst *string, patch *string, field string, fields map[string][]string) {
	if patch == nil {
		return
	}

	value := strings.TrimSpace(*patch)
	if value == "" {
		fields[field] = append(fields[field], field+" is required")
		return
	}

	*dst = value
}

// RequireNonBlank records a field error when value is blank and returns the trimmed value.
func RequireNonBlank(value string, field string, fields map[string][]string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		fields[field] = append(fields[field], field+" is required")
	}

	return value
}

// ValidationOrNil returns a Validation error when fields holds any entry.
func ValidationOrNil(fields map[string][]string) error {
	if len(fields) == 0 {
		return nil
	}

	return Validation(fields)
}
