package core

import "sort"

// ProjectModel is the semantic model of one analysis run.
// It is built once by the model builder and never mutated afterwards.
type ProjectModel struct {
	Root       string         `json:"root"`
	Files      []SourceFile   `json:"files"`
	Components []*Component   `json:"components"`
	Services   []*Service     `json:"services"`
	Modules    []*Module      `json:"modules"`
	Pipes      []*Pipe        `json:"pipes"`
	Directives []*Directive   `json:"directives"`
	Imports    []ImportRecord `json:"-"`
	Exports    []ExportRecord `json:"-"`
}

// AddEntity files an entity under its kind.
func (m *ProjectModel) AddEntity(e Entity) {
	switch v := e.(type) {
	case *Component:
		m.Components = append(m.Components, v)
	case *Service:
		m.Services = append(m.Services, v)
	case *Module:
		m.Modules = append(m.Modules, v)
	case *Pipe:
		m.Pipes = append(m.Pipes, v)
	case *Directive:
		m.Directives = append(m.Directives, v)
	}
}

// Entities returns every entity, grouped in kind order.
func (m *ProjectModel) Entities() []Entity {
	out := make([]Entity, 0, m.EntityCount())
	for _, c := range m.Components {
		out = append(out, c)
	}
	for _, s := range m.Services {
		out = append(out, s)
	}
	for _, mod := range m.Modules {
		out = append(out, mod)
	}
	for _, p := range m.Pipes {
		out = append(out, p)
	}
	for _, d := range m.Directives {
		out = append(out, d)
	}
	return out
}

// EntitiesOf returns the entities of one kind.
func (m *ProjectModel) EntitiesOf(kind EntityKind) []Entity {
	var out []Entity
	for _, e := range m.Entities() {
		if e.EntityKind() == kind {
			out = append(out, e)
		}
	}
	return out
}

// EntityCount returns the total number of entities.
func (m *ProjectModel) EntityCount() int {
	return len(m.Components) + len(m.Services) + len(m.Modules) + len(m.Pipes) + len(m.Directives)
}

// CountByKind returns the number of entities of each kind.
func (m *ProjectModel) CountByKind() map[EntityKind]int {
	return map[EntityKind]int{
		KindComponent: len(m.Components),
		KindService:   len(m.Services),
		KindModule:    len(m.Modules),
		KindPipe:      len(m.Pipes),
		KindDirective: len(m.Directives),
	}
}

// File returns the SourceFile with the given id.
func (m *ProjectModel) File(id string) (SourceFile, bool) {
	for _, f := range m.Files {
		if f.ID == id {
			return f, true
		}
	}
	return SourceFile{}, false
}

// Sort puts every collection in a deterministic order: files by relative
// path, entities by file path then name.
func (m *ProjectModel) Sort() {
	sort.SliceStable(m.Files, func(i, j int) bool { return m.Files[i].RelPath < m.Files[j].RelPath })
	sortEntities(m.Components)
	sortEntities(m.Services)
	sortEntities(m.Modules)
	sortEntities(m.Pipes)
	sortEntities(m.Directives)
}

func sortEntities[E Entity](list []E) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SourcePath() != list[j].SourcePath() {
			return list[i].SourcePath() < list[j].SourcePath()
		}
		return list[i].EntityName() < list[j].EntityName()
	})
}
