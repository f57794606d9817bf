package modular

const (
	ModulesPath = ".Modules"
	ModulesRoot = ModulesPath + "/"
)

// Application is the host package and the module names it declares.
type Application struct {
	Name        string
	ModuleNames []string
	Package     Package

	declared map[string]struct{}
}

func newApplication(name string, pkg Package) *Application {
	names := pkg.Manifest().ModuleNames()
	declared := make(map[string]struct{}, len(names))
	for _, n := range names {
		declared[n] = struct{}{}
	}
	return &Application{
		Name:        name,
		ModuleNames: names,
		Package:     pkg,
		declared:    declared,
	}
}

// Declares reports whether name is one of the declared modules (ordinal match).
func (a *Application) Declares(name string) bool {
	_, ok := a.declared[name]
	return ok
}
