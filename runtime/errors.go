package runtime

import (
	"errors"
	"fmt"

	"github.com/modcore/modcore/types"
)

// CoreModuleName tags errors raised by the dispatcher itself rather than by
// a method handler.
const CoreModuleName = "core"

// Error codes of the core module.
const (
	CodeInvalidTransaction uint32 = iota + 1
	CodeInvalidNonce
	CodeMethodNotFound
	CodeInvalidCallFormat
	CodeOutOfGas
	CodeMessageQuotaExceeded
	CodeAborted
)

// ErrMessageQuotaExceeded is returned when a handler tries to emit more
// outbound messages than its transaction's quota allows.
var ErrMessageQuotaExceeded = errors.New("consensus message quota exceeded")

// ModuleError is a structured failure attributed to a named module. Method
// handlers return it to control the module/code reported in the call result.
type ModuleError struct {
	Module  string
	Code    uint32
	Message string
}

// Error implements the error interface.
func (e *ModuleError) Error() string {
	return fmt.Sprintf("%s (module: %s, code: %d)", e.Message, e.Module, e.Code)
}

// NewModuleError creates a ModuleError with a formatted message.
func NewModuleError(module string, code uint32, format string, args ...any) *ModuleError {
	return &ModuleError{Module: module, Code: code, Message: fmt.Sprintf(format, args...)}
}

// failedResultFor maps a handler error onto a call result. ModuleError keeps
// its attribution; well-known sentinel errors map to core module codes; any
// other error is reported as a core abort.
func failedResultFor(err error) types.CallResult {
	var me *ModuleError
	if errors.As(err, &me) {
		return types.FailedCallResultFor(me.Module, me.Code, me.Message)
	}
	switch {
	case errors.Is(err, ErrOutOfGas):
		return types.FailedCallResultFor(CoreModuleName, CodeOutOfGas, err.Error())
	case errors.Is(err, ErrMessageQuotaExceeded):
		return types.FailedCallResultFor(CoreModuleName, CodeMessageQuotaExceeded, err.Error())
	default:
		return types.FailedCallResultFor(CoreModuleName, CodeAborted, err.Error())
	}
}
