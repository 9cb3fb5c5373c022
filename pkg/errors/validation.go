package errors

// ValidationError rejects a bad Options value at construction time. It
// embeds baseError for the message/code/details machinery and adds the
// three pieces of context a caller needs to fix a bad configuration: which
// field, which rule it broke, and what was actually provided.
type ValidationError struct {
	*baseError

	field    string
	rule     string
	provided any
}

// NewValidationError constructs a ValidationError with the given cause,
// code, and message.
func NewValidationError(err error, code ErrorCode, msg string) *ValidationError {
	return &ValidationError{baseError: NewBaseError(err, code, msg)}
}

// WithDetail attaches structured context while preserving the
// ValidationError type through the fluent chain.
func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

// WithField records which Options field failed validation.
func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

// WithRule records which validation rule was violated, e.g. "power_of_two"
// or "range".
func (ve *ValidationError) WithRule(rule string) *ValidationError {
	ve.rule = rule
	return ve
}

// WithProvided records the value that failed validation.
func (ve *ValidationError) WithProvided(value any) *ValidationError {
	ve.provided = value
	return ve
}

// Field returns the Options field that failed validation.
func (ve *ValidationError) Field() string {
	return ve.field
}

// Rule returns the validation rule that was violated.
func (ve *ValidationError) Rule() string {
	return ve.rule
}

// Provided returns the value that failed validation.
func (ve *ValidationError) Provided() any {
	return ve.provided
}

// NewConfigurationValidationError builds a ValidationError for a malformed
// Options value, recording which field was wrong and why.
func NewConfigurationValidationError(field string, issue string) *ValidationError {
	return NewValidationError(
		nil,
		ErrorCodeInvalidInput,
		"dictionary configuration is invalid",
	).WithField(field).
		WithRule("configuration_integrity").
		WithDetail("validationIssue", issue)
}
