// Copyright 2024 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bank

import (
	"fmt"
	"strings"
	"sync"
)

// Directory maps names to owners. Names are not required to be unique;
// colliding names are made unique when an owner is added.
type Directory struct {
	mu     sync.RWMutex
	index  map[string]*Owner
	names  []string
	owners []*Owner
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		index: make(map[string]*Owner),
	}
}

// UniqueName returns name if it is not taken, and otherwise the first of
// "name (1)", "name (2)", ... which is not.
func UniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Add adds an owner and returns the name under which it can be looked up.
func (d *Directory) Add(o *Owner) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	name := UniqueName(o.Name(), func(s string) bool {
		_, ok := d.index[s]
		return ok
	})
	d.index[name] = o
	d.names = append(d.names, name)
	d.owners = append(d.owners, o)
	return name
}

// Len returns the number of owners.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.owners)
}

// Owner returns the owner registered under name.
func (d *Directory) Owner(name string) (*Owner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if o, ok := d.index[name]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("owner %q: %w", name, ErrNotFound)
}

// OwnerByID returns the first owner with the given id.
func (d *Directory) OwnerByID(id string) (*Owner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, o := range d.owners {
		if o.id == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("owner with id %q: %w", id, ErrNotFound)
}

// Owners returns all owners in the order they were added.
func (d *Directory) Owners() []*Owner {
	d.mu.RLock()
	defer d.mu.RUnlock()
	res := make([]*Owner, len(d.owners))
	copy(res, d.owners)
	return res
}

// Names returns the lookup names in the order the owners were added.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	res := make([]string, len(d.names))
	copy(res, d.names)
	return res
}

// FindAccount returns the first account with the given number across all
// owners, together with its owner.
func (d *Directory) FindAccount(number string) (*Owner, *Account, error) {
	for _, o := range d.Owners() {
		if as := o.InquireAccount(number); len(as) > 0 {
			return o, as[0], nil
		}
	}
	return nil, nil, fmt.Errorf("account %s: %w", number, ErrNotFound)
}

// InquireAccount returns the account with the given number as a
// collection, which is empty if there is no such account.
func (d *Directory) InquireAccount(number string) []*Account {
	if _, a, err := d.FindAccount(number); err == nil {
		return []*Account{a}
	}
	return nil
}

// Search returns the owners whose first or last name contains query,
// ignoring case.
func (d *Directory) Search(query string) []*Owner {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var res []*Owner
	for _, o := range d.Owners() {
		if strings.Contains(strings.ToLower(o.firstName), q) || strings.Contains(strings.ToLower(o.lastName), q) {
			res = append(res, o)
		}
	}
	return res
}
