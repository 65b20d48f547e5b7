// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package routes classifies endpoint groups into public and private sets.

Every domain package registers its group explicitly at startup:

	registry := routes.NewRegistry()
	registry.Register(routes.Group{Name: "auth", Visibility: routes.Public, Handler: authHandler.Routes()})
	registry.Register(routes.Group{Name: "user_profile", Visibility: routes.Private, Handler: profileHandler.Routes()})

	classification, err := registry.Classify()

The HTTP server mounts private groups behind the authorization gate and
public groups without it. A [Classification] is immutable once returned.
*/
package routes

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
)

// ErrClassification is returned by [Registry.Classify] when the registered
// groups cannot be split into a valid public/private configuration.
var ErrClassification = errors.New("routes: invalid endpoint group configuration")

// groupName matches a single lowercase URL path segment.
var groupName = regexp.MustCompile(`^[a-z0-9_-]+$`)

// # Visibility

// Visibility tells the server whether a group sits behind the authorization gate.
type Visibility int

const (
	// Public groups are reachable without a token.
	Public Visibility = iota + 1

	// Private groups require a valid bearer token before any handler runs.
	Private
)

// String returns the lowercase label used in logs.
func (visibility Visibility) String() string {
	switch visibility {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return fmt.Sprintf("visibility(%d)", int(visibility))
	}
}

// # Group

// Group is one mountable set of endpoints sharing a URL prefix and a visibility.
type Group struct {
	// Name is the path segment under /api/v1 (e.g. "auth" -> /api/v1/auth).
	Name string

	Visibility Visibility

	Handler http.Handler
}

// Classification is the startup-time split of registered groups.
type Classification struct {
	Public  []Group
	Private []Group
}

// # Registry

// Registry collects groups during startup. It is safe for concurrent use,
// though registration normally happens from a single goroutine in main.
type Registry struct {
	mu     sync.Mutex
	groups []Group
	seen   map[string]struct{}
	errs   []error
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

/*
Register adds a group to the registry.

Problems are recorded rather than returned so that wiring code stays linear;
every recorded problem is reported together by [Registry.Classify].
*/
func (registry *Registry) Register(group Group) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if err := validateGroup(group); err != nil {
		registry.errs = append(registry.errs, err)
		return
	}

	if _, exists := registry.seen[group.Name]; exists {
		registry.errs = append(registry.errs, fmt.Errorf("group %q registered twice", group.Name))
		return
	}

	registry.seen[group.Name] = struct{}{}
	registry.groups = append(registry.groups, group)
}

/*
Classify splits the registered groups by visibility, preserving registration order.

Returns:
  - Classification: Public and Private group lists
  - error: ErrClassification joined with every registration problem, or an
    empty registry
*/
func (registry *Registry) Classify() (Classification, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if len(registry.errs) > 0 {
		return Classification{}, errors.Join(append([]error{ErrClassification}, registry.errs...)...)
	}

	if len(registry.groups) == 0 {
		return Classification{}, fmt.Errorf("%w: no endpoint groups registered", ErrClassification)
	}

	var classification Classification
	for _, group := range registry.groups {
		if group.Visibility == Private {
			classification.Private = append(classification.Private, group)
		} else {
			classification.Public = append(classification.Public, group)
		}
	}

	return classification, nil
}

func validateGroup(group Group) error {
	switch {
	case group.Name == "":
		return errors.New("group name is empty")
	case !groupName.MatchString(group.Name):
		return fmt.Errorf("group name %q is not a single lowercase path segment", group.Name)
	case group.Handler == nil:
		return fmt.Errorf("group %q has no handler", group.Name)
	case group.Visibility != Public && group.Visibility != Private:
		return fmt.Errorf("group %q has unknown visibility %s", group.Name, group.Visibility)
	}
	return nil
}
