package evaluator

import "go.uber.org/zap"

// Builtin is one catalog entry: a name, a declared arity between 1 and 6,
// and the host implementation invoked once the entry saturates. Fn always
// receives exactly Arity arguments.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(m *Machine, args []Value) (Value, error)
}

// Catalog resolves builtin names. The machines consult it as a table so
// completing the builtin set never touches evaluation logic.
type Catalog interface {
	Lookup(name string) (*Builtin, bool)
}

// Machine hosts one evaluation: it carries the catalog, collects trace
// output and logs through zap. A Machine is not safe for concurrent runs;
// give each goroutine its own.
type Machine struct {
	catalog Catalog
	logger  *zap.Logger

	// Logs accumulates trace messages in emission order.
	Logs []string
}

func NewMachine(catalog Catalog) *Machine {
	return &Machine{catalog: catalog, logger: zap.NewNop()}
}

// WithLogger sets the machine's logger.
func (m *Machine) WithLogger(log *zap.Logger) {
	m.logger = log.With(zap.String("service", "machine"))
}

func (m *Machine) Catalog() Catalog { return m.catalog }

// Trace records one diagnostic message on the side channel.
func (m *Machine) Trace(msg string) {
	m.Logs = append(m.Logs, msg)
	m.logger.Debug("trace", zap.String("message", msg))
}

// BuiltinValue wraps a catalog entry as a chain of one-argument functions:
// each application collects the next argument, strictly and left to right,
// and the one that saturates the declared arity runs the implementation. A
// partial application is a plain value and can be shared; later arguments
// never leak between shares.
func (m *Machine) BuiltinValue(b *Builtin) Value {
	return m.curry(b, nil)
}

func (m *Machine) curry(b *Builtin, got []Value) Value {
	return &Function{Fn: func(arg Value) (Value, error) {
		args := make([]Value, len(got), len(got)+1)
		copy(args, got)
		args = append(args, arg)
		if len(args) < b.Arity {
			return m.curry(b, args), nil
		}
		return b.Fn(m, args)
	}}
}
