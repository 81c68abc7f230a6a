package runtime

import (
	"fmt"

	"github.com/modcore/modcore/log"
	"github.com/modcore/modcore/metrics"
	"github.com/modcore/modcore/types"
)

// Handler executes one method call. The returned bytes become the success
// payload; a returned error fails the call and rolls its effects back.
type Handler func(tc *TxContext, body []byte) ([]byte, error)

// Dispatcher routes transactions to registered method handlers and enforces
// transaction-level concerns around them: envelope validation, caller
// authorization, nonce replay protection, gas metering and effect flushing.
type Dispatcher struct {
	methods map[string]Handler
	logger  *log.Logger

	txMeter     *metrics.Counter
	txFailMeter *metrics.Counter
	gasHist     *metrics.Histogram
	timeHist    *metrics.Histogram
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		methods:     make(map[string]Handler),
		logger:      log.Default().Module("dispatcher"),
		txMeter:     metrics.DefaultRegistry.Counter("dispatcher/txs"),
		txFailMeter: metrics.DefaultRegistry.Counter("dispatcher/failures"),
		gasHist:     metrics.DefaultRegistry.Histogram("dispatcher/gas_used"),
		timeHist:    metrics.DefaultRegistry.Histogram("dispatcher/handler_seconds"),
	}
}

// Register binds a method name to a handler. Registering a name twice is an
// error.
func (d *Dispatcher) Register(method string, h Handler) error {
	if _, ok := d.methods[method]; ok {
		return fmt.Errorf("method already registered: %s", method)
	}
	d.methods[method] = h
	return nil
}

// MustRegister is Register panicking on error, for wiring at startup.
func (d *Dispatcher) MustRegister(method string, h Handler) {
	if err := d.Register(method, h); err != nil {
		panic(err)
	}
}

// DispatchCall executes tx in context c and returns the call result plus
// the gas remaining out of the transaction's gas limit. Failures are
// reported inside the result; the caller decides how to reconcile storage.
func (d *Dispatcher) DispatchCall(c *Context, tx *types.Transaction) (types.CallResult, uint64) {
	d.txMeter.Inc()
	meter := NewGasMeter(tx.AuthInfo.Fee.Gas)

	if err := tx.Validate(); err != nil {
		d.txFailMeter.Inc()
		return types.FailedCallResultFor(CoreModuleName, CodeInvalidTransaction, err.Error()), meter.Remaining()
	}

	signer := tx.AuthInfo.SignerInfo[0]
	caller, err := signer.AddressSpec.Caller()
	if err != nil {
		d.txFailMeter.Inc()
		return types.FailedCallResultFor(CoreModuleName, CodeInvalidTransaction, err.Error()), meter.Remaining()
	}
	internal := signer.AddressSpec.IsInternal()

	// Internal transactions run on behalf of an already-authorized caller
	// and carry no nonce of their own.
	if !internal {
		if err := checkAndBumpNonce(c, caller, signer.Nonce); err != nil {
			d.txFailMeter.Inc()
			return types.FailedCallResultFor(CoreModuleName, CodeInvalidNonce, err.Error()), meter.Remaining()
		}
	}

	handler, ok := d.methods[tx.Call.Method]
	if !ok {
		d.txFailMeter.Inc()
		return types.FailedCallResultFor(CoreModuleName, CodeMethodNotFound, fmt.Sprintf("method not found: %s", tx.Call.Method)), meter.Remaining()
	}

	if c.mode == ModeCheck {
		return types.OkCallResult(nil), meter.Remaining()
	}

	msgCap := tx.AuthInfo.Fee.ConsensusMessages
	if msgCap > c.msgQuota {
		msgCap = c.msgQuota
	}

	tc := &TxContext{rt: c, meter: meter, caller: caller, internal: internal, msgCap: msgCap}

	out, err := d.runHandler(tc, handler, tx.Call.Body)
	d.gasHist.Observe(float64(meter.Used()))
	if err != nil {
		d.txFailMeter.Inc()
		d.logger.Debug("call failed", "method", tx.Call.Method, "err", err)
		return failedResultFor(err), meter.Remaining()
	}

	// Flush buffered effects only now that the handler succeeded.
	c.emitEvents(tc.events)
	c.emitMessages(tc.messages)

	return types.OkCallResult(out), meter.Remaining()
}

// runHandler invokes h, converting a panic into a structured abort so one
// misbehaving handler cannot take down the batch.
func (d *Dispatcher) runHandler(tc *TxContext, h Handler, body []byte) (out []byte, err error) {
	timer := metrics.NewTimer(d.timeHist)
	defer timer.Stop()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panic", "err", r)
			err = NewModuleError(CoreModuleName, CodeAborted, "call aborted: %v", r)
		}
	}()
	return h(tc, body)
}
