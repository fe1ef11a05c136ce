package formation

import (
	"fmt"
	"sort"
)

// Catalog is a read-only registry of formations.
type Catalog struct {
	byID map[string]Formation
}

func NewCatalog(formations ...Formation) *Catalog {
	byID := make(map[string]Formation, len(formations))
	for _, f := range formations {
		rows := make([]Row, 0, len(f.Rows))
		for _, row := range f.Rows {
			rows = append(rows, append(Row(nil), row...))
		}
		byID[f.ID] = Formation{ID: f.ID, Rows: rows}
	}
	return &Catalog{byID: byID}
}

var defaultCatalog = NewCatalog(
	Formation{ID: "4-4-2", Rows: []Row{
		{RoleGK},
		{RoleLB, RoleCB, RoleCB, RoleRB},
		{RoleLM, RoleCM, RoleCM, RoleRM},
		{RoleST, RoleST},
	}},
	Formation{ID: "4-3-3", Rows: []Row{
		{RoleGK},
		{RoleLB, RoleCB, RoleCB, RoleRB},
		{RoleCM, RoleCDM, RoleCM},
		{RoleLW, RoleST, RoleRW},
	}},
	Formation{ID: "4-2-3-1", Rows: []Row{
		{RoleGK},
		{RoleLB, RoleCB, RoleCB, RoleRB},
		{RoleCDM, RoleCDM},
		{RoleLM, RoleCAM, RoleRM},
		{RoleST},
	}},
	Formation{ID: "3-5-2", Rows: []Row{
		{RoleGK},
		{RoleCB, RoleCB, RoleCB},
		{RoleLWB, RoleCM, RoleCDM, RoleCM, RoleRWB},
		{RoleST, RoleST},
	}},
	Formation{ID: "3-4-3", Rows: []Row{
		{RoleGK},
		{RoleCB, RoleCB, RoleCB},
		{RoleLM, RoleCM, RoleCM, RoleRM},
		{RoleLW, RoleST, RoleRW},
	}},
	Formation{ID: "5-3-2", Rows: []Row{
		{RoleGK},
		{RoleLWB, RoleCB, RoleCB, RoleCB, RoleRWB},
		{RoleCM, RoleCDM, RoleCM},
		{RoleST, RoleST},
	}},
	Formation{ID: "4-5-1", Rows: []Row{
		{RoleGK},
		{RoleLB, RoleCB, RoleCB, RoleRB},
		{RoleLM, RoleCM, RoleCDM, RoleCM, RoleRM},
		{RoleST},
	}},
	Formation{ID: "4-1-4-1", Rows: []Row{
		{RoleGK},
		{RoleLB, RoleCB, RoleCB, RoleRB},
		{RoleCDM},
		{RoleLM, RoleCM, RoleCM, RoleRM},
		{RoleST},
	}},
)

// Default returns the catalog of formations offered to coaches.
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) Lookup(id string) (Formation, error) {
	f, ok := c.byID[id]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %s", ErrUnknownFormation, id)
	}
	return f, nil
}

// Slots returns the ordered slot keys of a formation, or nil when unknown.
func (c *Catalog) Slots(id string) []SlotKey {
	f, ok := c.byID[id]
	if !ok {
		return nil
	}
	return f.Slots()
}

// SlotCount returns how many starters a formation requires, 0 when unknown.
func (c *Catalog) SlotCount(id string) int {
	f, ok := c.byID[id]
	if !ok {
		return 0
	}
	return f.SlotCount()
}

func (c *Catalog) IDs() []string {
	out := make([]string, 0, len(c.byID))
	for id := range c.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) All() []Formation {
	ids := c.IDs()
	out := make([]Formation, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id])
	}
	return out
}
