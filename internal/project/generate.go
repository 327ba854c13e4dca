package project

import (
	"errors"
	"strings"
)

// Asker reads one answer per question. An empty answer means "left blank".
type Asker interface {
	Ask(question string) (string, error)
}

// ErrNameRequired is returned when the generator gets an empty project name.
var ErrNameRequired = errors.New("project name cannot be empty")

// Generate builds a descriptor for root by asking the user for each field.
// The descriptor is not written; call Save.
func Generate(asker Asker, root string) (*Descriptor, error) {
	desc := &Descriptor{root: root, Hooks: []string{}}

	name, err := asker.Ask("Enter project name: ")
	if err != nil {
		return nil, err
	}
	desc.Name = strings.TrimSpace(name)
	if desc.Name == "" {
		return nil, ErrNameRequired
	}

	version, err := ask(asker, "Enter project version (can be left blank): ")
	if err != nil {
		return nil, err
	}
	if version != "" {
		desc.Version = &version
	}

	if desc.WorkingDirectory, err = ask(asker, "Enter working directory (can be left blank): "); err != nil {
		return nil, err
	}

	compiler, err := ask(asker, "Enter compiler (can be left blank): ")
	if err != nil {
		return nil, err
	}
	if compiler != "" {
		desc.Compiler = &compiler
	}

	flags, err := ask(asker, "Enter flags (can be left blank): ")
	if err != nil {
		return nil, err
	}
	desc.Flags = strings.Fields(flags)

	hooks, err := ask(asker, "Enter hooks (can be left blank): ")
	if err != nil {
		return nil, err
	}
	if fields := strings.Fields(hooks); len(fields) > 0 {
		desc.Hooks = fields
	}

	return desc, nil
}

func ask(asker Asker, question string) (string, error) {
	answer, err := asker.Ask(question)
	return strings.TrimSpace(answer), err
}
