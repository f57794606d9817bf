package modular

// LookupOutcome labels one Module.File call.
type LookupOutcome string

const (
	LookupHit        LookupOutcome = "hit"
	LookupResolved   LookupOutcome = "resolved"
	LookupAbsent     LookupOutcome = "absent"
	LookupUndeclared LookupOutcome = "undeclared"
)

// ModuleOutcome labels one Registry.Module call.
type ModuleOutcome string

const (
	ModuleCached  ModuleOutcome = "cached"
	ModuleCreated ModuleOutcome = "created"
	ModuleUnknown ModuleOutcome = "unknown"
)

// Observer receives registry events, typically to feed metrics.
type Observer interface {
	ModuleResolved(name string, outcome ModuleOutcome)
	FileLookup(module string, outcome LookupOutcome)
}

type noopObserver struct{}

func (noopObserver) ModuleResolved(string, ModuleOutcome) {}
func (noopObserver) FileLookup(string, LookupOutcome)     {}
