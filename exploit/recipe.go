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

package exploit

import (
	"io"

	"github.com/mtkboot/core/curated"
	"github.com/mtkboot/core/firmware/da"
)

// Recipe is one named way of turning a parsed DA entry, the DA file's raw
// bytes, and the device's DA1 setup echo into a staged payload that is
// uploaded and jumped to over rw, bypassing whatever check that entry's DA1
// would otherwise have enforced (§2). Run performs the whole adaptation: it
// builds the stub, uploads it, jumps to it, and reads back the recipe's own
// status echo.
type Recipe interface {
	Name() string
	Run(rw io.ReadWriter, entry da.Entry, raw []byte, setup []byte) error
}

// ErrUnknownRecipe is reported - via curated.Errorf - by Catalog.Lookup when
// asked for a name no registered Recipe answers to.
const ErrUnknownRecipe = "exploit: no recipe registered for %q"

// Catalog is a named-variant registry identical in shape to patch.Catalog:
// CLI-facing names resolve to the Recipe that implements them.
type Catalog struct {
	recipes map[string]Recipe
}

// NewCatalog returns a Catalog pre-populated with every recipe this package
// defines (croissant, croissant-2, pumpkin).
func NewCatalog() *Catalog {
	c := &Catalog{recipes: make(map[string]Recipe)}
	for _, r := range []Recipe{
		newCroissant(),
		newCroissant2(),
		newPumpkin(),
	} {
		c.recipes[r.Name()] = r
	}
	return c
}

// Lookup resolves name to its registered Recipe.
func (c *Catalog) Lookup(name string) (Recipe, error) {
	r, ok := c.recipes[name]
	if !ok {
		return nil, curated.Errorf(ErrUnknownRecipe, name)
	}
	return r, nil
}

// Names returns every registered recipe name, for CLI usage text.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.recipes))
	for name := range c.recipes {
		names = append(names, name)
	}
	return names
}
