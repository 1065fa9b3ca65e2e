package rbac

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds validated role definitions with inherited permissions already
// folded in. It is immutable after construction and safe for concurrent use.
type Catalog struct {
	roles  map[string]Role
	sorted []string
}

// catalogFile is the YAML layout:
//
//	roles:
//	  - name: COMPANY_USER
//	    kind: company
//	    permissions: [READ_COMPANY]
//	  - name: COMPANY_ADMIN
//	    kind: company
//	    permissions: [WRITE_COMPANY]
//	    inherits: [COMPANY_USER]
type catalogFile struct {
	Roles []Role `yaml:"roles"`
}

// NewCatalog validates roles and resolves inheritance.
func NewCatalog(roles []Role) (*Catalog, error) {
	defs := make(map[string]Role, len(roles))
	for _, r := range roles {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return nil, fmt.Errorf("%w: empty role name", ErrInvalidRole)
		}
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("%w: role %s has kind %q", ErrInvalidScopeKind, r.Name, r.Kind)
		}
		if _, dup := defs[r.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRole, r.Name)
		}
		defs[r.Name] = r
	}

	for name, r := range defs {
		for _, parent := range r.Inherits {
			if _, ok := defs[parent]; !ok {
				return nil, fmt.Errorf("%w: %s inherits unknown role %s", ErrInvalidRole, name, parent)
			}
		}
	}

	depths := make(map[string]int, len(defs))
	for name := range defs {
		d, err := depth(name, defs, depths, nil)
		if err != nil {
			return nil, err
		}
		if d > MaxInheritanceDepth {
			return nil, errors.Join(ErrCircularInheritance,
				fmt.Errorf("role %s exceeds inheritance depth %d", name, MaxInheritanceDepth))
		}
	}

	resolved := make(map[string]Role, len(defs))
	for name, r := range defs {
		resolved[name] = Role{
			Name:        r.Name,
			Kind:        r.Kind,
			Permissions: normalize(collect(name, defs)),
			Inherits:    slices.Clone(r.Inherits),
		}
	}

	sorted := make([]string, 0, len(defs))
	for name := range defs {
		sorted = append(sorted, name)
	}
	slices.SortFunc(sorted, func(a, b string) int {
		if d := depths[a] - depths[b]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	return &Catalog{roles: resolved, sorted: sorted}, nil
}

// LoadCatalog parses a YAML role catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("rbac: decode catalog: %w", err)
	}
	return NewCatalog(f.Roles)
}

// LoadCatalogFile parses the YAML role catalog at path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rbac: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Role returns the resolved role. The returned permissions include inherited ones.
func (c *Catalog) Role(name string) (Role, error) {
	r, ok := c.roles[name]
	if !ok {
		return Role{}, fmt.Errorf("%w: %s", ErrInvalidRole, name)
	}
	r.Permissions = slices.Clone(r.Permissions)
	r.Inherits = slices.Clone(r.Inherits)
	return r, nil
}

// Roles returns role names with base roles first.
func (c *Catalog) Roles() []string {
	return slices.Clone(c.sorted)
}

// Can reports ErrInvalidRole or ErrInsufficientPermissions when role lacks permission.
func (c *Catalog) Can(role, permission string) error {
	r, ok := c.roles[role]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if !slices.Contains(r.Permissions, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

// depth returns the length of the longest inheritance chain below name.
// path holds the roles on the current DFS branch.
func depth(name string, defs map[string]Role, memo map[string]int, path []string) (int, error) {
	if d, ok := memo[name]; ok {
		return d, nil
	}
	if slices.Contains(path, name) {
		return 0, errors.Join(ErrCircularInheritance,
			fmt.Errorf("%s -> %s", strings.Join(path, " -> "), name))
	}
	if len(path) > MaxInheritanceDepth {
		return len(path), nil
	}

	path = append(path, name)
	maxDepth := 0
	for _, parent := range defs[name].Inherits {
		d, err := depth(parent, defs, memo, path)
		if err != nil {
			return 0, err
		}
		maxDepth = max(maxDepth, d+1)
	}
	memo[name] = maxDepth
	return maxDepth, nil
}

// collect gathers permissions of name and every role it inherits from.
// Inheritance is acyclic by the time this runs.
func collect(name string, defs map[string]Role) []string {
	out := slices.Clone(defs[name].Permissions)
	for _, parent := range defs[name].Inherits {
		out = append(out, collect(parent, defs)...)
	}
	return out
}
