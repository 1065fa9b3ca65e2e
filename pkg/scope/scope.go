package scope

import "sync"

// SuperAdminTenantID is the tenant id reserved for platform-level access.
// A tenant cell holding this value means no tenant filtering applies.
const SuperAdminTenantID int64 = -1

// Cell is a single request-scoped int64 value that is either set or unset.
type Cell struct {
	mu    sync.RWMutex
	value int64
	set   bool
}

// Set stores the value.
func (c *Cell) Set(v int64) {
	c.mu.Lock()
	c.value = v
	c.set = true
	c.mu.Unlock()
}

// Get returns the stored value and whether it is set.
func (c *Cell) Get() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.set
}

// Clear unsets the cell.
func (c *Cell) Clear() {
	c.mu.Lock()
	c.value = 0
	c.set = false
	c.mu.Unlock()
}

// Scope groups the tenant and company cells of one request.
type Scope struct {
	tenant  Cell
	company Cell
}

// New returns an empty Scope. Every request gets its own and a Scope is never
// reused after its request returns.
func New() *Scope { return &Scope{} }

// Tenant returns the tenant cell.
func (s *Scope) Tenant() *Cell { return &s.tenant }

// Company returns the company cell.
func (s *Scope) Company() *Cell { return &s.company }

// IsSuperAdmin reports whether the tenant cell holds SuperAdminTenantID.
func (s *Scope) IsSuperAdmin() bool {
	id, ok := s.tenant.Get()
	return ok && id == SuperAdminTenantID
}

// Clear unsets both cells.
func (s *Scope) Clear() {
	s.tenant.Clear()
	s.company.Clear()
}
