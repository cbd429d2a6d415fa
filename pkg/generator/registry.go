package generator

import (
	"errors"
	"fmt"
	"sort"
)

const (
	TypePayment  = "payment"
	TypePlatform = "pcf"
)

// ErrUnknownType is returned for log types with no registered generator
var ErrUnknownType = errors.New("unknown log type")

// Registry maps log type names to generator factory functions
var Registry = map[string]func() Generator{
	TypePayment:  func() Generator { return &PaymentGenerator{} },
	TypePlatform: func() Generator { return &PlatformGenerator{} },
}

// Get returns a generator by name
func Get(name string) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return factory(), nil
}

// List returns all available generator names
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
