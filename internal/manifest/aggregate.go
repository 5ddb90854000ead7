package manifest

import "strings"

// Aggregate merges per-project metadata into the final manifest. Designer
// files are lifted off the project records and de-duplicated by path. The
// arrays are always non-nil so an all-failed run still serializes as empty
// arrays, not null.
func Aggregate(solutionPath string, projects []ProjectMetadata) *Manifest {
	m := &Manifest{
		Solution: solutionPath,
		Projects: make([]ProjectMetadata, 0, len(projects)),
		Files:    []DesignerFile{},
	}

	seen := make(map[string]bool)
	for _, p := range projects {
		if p.ProjectReferences == nil {
			p.ProjectReferences = []string{}
		}
		m.Projects = append(m.Projects, p)
		for _, f := range p.DesignerFiles {
			key := strings.ToLower(f.Path)
			if seen[key] {
				continue
			}
			seen[key] = true
			m.Files = append(m.Files, f)
		}
	}
	return m
}
