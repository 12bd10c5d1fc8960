// Package service defines the lifecycle contract for infrastructure
// subsystems and a manager that initializes them in dependency order.
package service

import (
	"fmt"
	"sort"
)

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: replay stores, terminals, log sinks
//
// Lifecycle:
//  1. Construction (via factory or literal)
//  2. Init(args...) - implicit configuration (e.g. from parsed flags/config)
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	// Args are service-specific (config sections, paths, handles)
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Manager owns a set of services and runs their lifecycle in
// dependency order. Not safe for concurrent use; lifecycle phases
// run from the main goroutine
type Manager struct {
	services map[string]Service
	order    []string
}

// NewManager returns an empty manager
func NewManager() *Manager {
	return &Manager{services: make(map[string]Service)}
}

// Register adds a service. Duplicate names are an error
func (m *Manager) Register(svc Service) error {
	name := svc.Name()
	if _, exists := m.services[name]; exists {
		return fmt.Errorf("service: duplicate registration of %q", name)
	}
	m.services[name] = svc
	m.order = nil
	return nil
}

// Get returns a registered service by name
func (m *Manager) Get(name string) (Service, bool) {
	svc, ok := m.services[name]
	return svc, ok
}

// InitAll initializes every service in dependency order
// Args are forwarded to every Init call
func (m *Manager) InitAll(args ...any) error {
	order, err := m.resolveOrder()
	if err != nil {
		return err
	}
	m.order = order

	for _, name := range order {
		if err := m.services[name].Init(args...); err != nil {
			return fmt.Errorf("service: init %q: %w", name, err)
		}
	}
	return nil
}

// StartAll starts services in the order they were initialized
func (m *Manager) StartAll() error {
	if m.order == nil {
		return fmt.Errorf("service: StartAll before InitAll")
	}
	for _, name := range m.order {
		if err := m.services[name].Start(); err != nil {
			return fmt.Errorf("service: start %q: %w", name, err)
		}
	}
	return nil
}

// StopAll stops services in reverse initialization order
// Stop errors are collected; every service still gets its Stop call
func (m *Manager) StopAll() error {
	if m.order == nil {
		return nil
	}
	var firstErr error
	for i := len(m.order) - 1; i >= 0; i-- {
		if err := m.services[m.order[i]].Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("service: stop %q: %w", m.order[i], err)
		}
	}
	return firstErr
}

// resolveOrder performs a depth-first topological sort over dependencies
func (m *Manager) resolveOrder() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(m.services))
	order := make([]string, 0, len(m.services))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("service: dependency cycle through %q", name)
		}
		svc, ok := m.services[name]
		if !ok {
			return fmt.Errorf("service: unknown dependency %q", name)
		}
		state[name] = visiting
		for _, dep := range svc.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	// Stable iteration: sort names so resolution order is reproducible
	names := make([]string, 0, len(m.services))
	for name := range m.services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
