// This file is part of mtkboot.
//
// mtkboot is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mtkboot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mtkboot.  If not, see <https://www.gnu.org/licenses/>.

package patch

import (
	"sort"

	"github.com/mtkboot/core/arm"
	"github.com/mtkboot/core/logger"
)

// Catalog is a named registry of patches, applied independently with no
// transactional rollback: one patch's failure never prevents the next
// patch from being tried.
type Catalog struct {
	patches map[string]Patch
	order   []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{patches: make(map[string]Patch)}
}

// Add registers p under its own Name. Adding a name that is already
// registered does nothing; the first registration is kept.
func (c *Catalog) Add(p Patch) {
	if _, ok := c.patches[p.Name]; ok {
		return
	}
	c.patches[p.Name] = p
	c.order = append(c.order, p.Name)
}

// Get returns the patch registered under name, if any.
func (c *Catalog) Get(name string) (Patch, bool) {
	p, ok := c.patches[name]
	return p, ok
}

// Names returns every registered patch name, sorted alphabetically (ApplyAll
// still runs the patches in registration order).
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)
	return names
}

// Result is the outcome of applying one named patch.
type Result struct {
	Name string
	Err  error
}

// ApplyAll runs every registered patch against buf in registration order,
// logging each one's outcome through log (perm gates whether anything is
// actually recorded). A patch's failure is reported in its Result and does
// not stop the remaining patches from running.
func (c *Catalog) ApplyAll(buf arm.CodeBuffer, log *logger.Log, perm logger.Permission) []Result {
	results := make([]Result, 0, len(c.order))
	for _, name := range c.order {
		p := c.patches[name]
		err := p.Apply(buf)
		if err != nil {
			log.Logf(perm, "patch", "failed: %s: %v", name, err)
		} else {
			log.Logf(perm, "patch", "ok: %s", name)
		}
		results = append(results, Result{Name: name, Err: err})
	}
	return results
}
