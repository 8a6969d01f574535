package rendertree

import "fmt"

// Contract violation codes. Each identifies one way the builder protocol can
// be misused.
const (
	CodeScopeUnderflow       = "RT001" // close call with no open scope
	CodeMismatchedClose      = "RT002" // close call kind differs from the open frame
	CodeAttributeParent      = "RT003" // attribute without a preceding element/component
	CodeNoPrecedingAttribute = "RT004" // SetUpdatesAttributeName target is not an attribute
	CodeKeyParent            = "RT005" // SetKey with no open scope or on a region
	CodeCaptureParent        = "RT006" // reference capture under the wrong parent kind
	CodeNotAnAttributeFrame  = "RT007" // raw frame passed to AddAttributeFrame is not an attribute
	CodeInvalidComponentType = "RT008" // OpenComponent type does not implement Component
	CodeStoreReleased        = "RT009" // store used after Release
	CodeIndexOutOfRange      = "RT010" // store index outside [0, len)
)

// ContractError describes a misuse of the builder protocol. Builder methods
// panic with *ContractError: these are programming errors in the caller, not
// recoverable runtime conditions. The builder's content up to the failure is
// left as-is; callers should discard the builder or Clear() it rather than
// continue appending.
type ContractError struct {
	// Code is the violation identifier (e.g. "RT001").
	Code string

	// Message describes what the caller did wrong.
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("rendertree: %s: %s", e.Code, e.Message)
}

// contractViolation panics with a *ContractError for the given code.
func contractViolation(code, format string, args ...any) {
	panic(&ContractError{Code: code, Message: fmt.Sprintf(format, args...)})
}
