package domain

// Module is a named drill category that groups attempt statistics
type Module struct {
	ID          string
	Title       string
	Description string
	Icon        string
}

// ModuleOrfoepiya is the stress-accent drill
const ModuleOrfoepiya = "orfoepiya"

// MaxModuleIDLength matches the width of the module_id column
const MaxModuleIDLength = 64

var modules = []Module{
	{
		ID:          ModuleOrfoepiya,
		Title:       "Орфоэпия",
		Description: "Правильное ударение в русских словах",
		Icon:        "🔊",
	},
}

// Modules returns the module catalog in display order
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// FindModule looks a module up by id
func FindModule(id string) (Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}
