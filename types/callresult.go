package types

import "fmt"

// FailedCallResult describes a call failure attributed to a module.
type FailedCallResult struct {
	Module  string `codec:"module"`
	Code    uint32 `codec:"code"`
	Message string `codec:"message,omitempty"`
}

// Error implements the error interface so failures can travel as values.
func (f FailedCallResult) Error() string {
	return fmt.Sprintf("call failed: module: %s code: %d message: %s", f.Module, f.Code, f.Message)
}

// CallResult is the outcome of a dispatched call: either a success payload
// or a structured failure. Exactly one of the fields is set.
type CallResult struct {
	Ok     []byte            `codec:"ok,omitempty"`
	Failed *FailedCallResult `codec:"failed,omitempty"`
}

// OkCallResult wraps a success payload.
func OkCallResult(data []byte) CallResult {
	return CallResult{Ok: data}
}

// FailedCallResultFor builds a failure result.
func FailedCallResultFor(module string, code uint32, message string) CallResult {
	return CallResult{Failed: &FailedCallResult{Module: module, Code: code, Message: message}}
}

// IsSuccess returns whether the call succeeded.
func (r CallResult) IsSuccess() bool { return r.Failed == nil }

// String implements fmt.Stringer.
func (r CallResult) String() string {
	if r.IsSuccess() {
		return fmt.Sprintf("ok (%d bytes)", len(r.Ok))
	}
	return r.Failed.Error()
}
