package transport

import (
	"context"
	"fmt"
	"strings"
)

// Factory opens transports for the targets it recognizes.
type Factory interface {
	Name() string
	MatchesTarget(raw string) bool
	Open(ctx context.Context, target Target) (Transport, error)
}

// factories is the global registry of available transports
var factories []Factory

// Register adds a factory to the registry
func Register(f Factory) {
	factories = append(factories, f)
}

// ErrUnsupportedTarget is returned when no registered factory accepts a target.
type ErrUnsupportedTarget struct {
	Target string
}

func (e ErrUnsupportedTarget) Error() string {
	return fmt.Sprintf("no transport for target: %s", e.Target)
}

// ForTarget finds the factory that can handle the given target string
func ForTarget(raw string) (Factory, error) {
	for _, f := range factories {
		if f.MatchesTarget(raw) {
			return f, nil
		}
	}
	return nil, ErrUnsupportedTarget{Target: raw}
}

// Get finds a factory by its name
func Get(name string) (Factory, error) {
	for _, f := range factories {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, ErrUnsupportedTarget{Target: name + "://"}
}

// Open opens a transport for an already parsed target
func Open(ctx context.Context, target Target) (Transport, error) {
	f, err := Get(target.Scheme)
	if err != nil {
		return nil, err
	}
	return f.Open(ctx, target)
}

// List returns all registered transport names
func List() []string {
	names := make([]string, len(factories))
	for i, f := range factories {
		names[i] = f.Name()
	}
	return names
}

func hasScheme(raw, scheme string) bool {
	return strings.HasPrefix(strings.ToLower(raw), scheme+"://")
}
