package tas

// maxDepartmentDepth bounds the walk over nested departments.
const maxDepartmentDepth = 32

// Institution is the flattened shape shared by the REST and SOAP lookups:
// Children holds every department below the institution, depth-first.
type Institution struct {
	ID       int64        `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Active   *bool        `json:"active,omitempty" yaml:"active,omitempty"`
	Children []Department `json:"children" yaml:"children"`
}

type Department struct {
	ID     int64  `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Active *bool  `json:"active,omitempty" yaml:"active,omitempty"`
}

// Country as returned by the directory service.
type Country struct {
	ID     int64  `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Abbrev string `json:"abbrev" yaml:"abbrev"`
}

// deptNode is one entry of a department tree, whichever wire format it came
// from.
type deptNode struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Active   *bool      `json:"active"`
	Children []deptNode `json:"children"`
}

// flattenDepartments lists every node of the forest in pre-order: a
// department, then its descendants, then its next sibling. A node whose id
// repeats one of its ancestors' is skipped with its subtree, and nothing
// deeper than maxDepartmentDepth is visited.
func flattenDepartments(nodes []deptNode) []Department {
	out := make([]Department, 0, len(nodes))
	path := make(map[int64]bool)

	var walk func(nodes []deptNode, depth int)
	walk = func(nodes []deptNode, depth int) {
		if depth >= maxDepartmentDepth {
			return
		}
		for _, n := range nodes {
			if path[n.ID] {
				continue
			}
			out = append(out, Department{ID: n.ID, Name: n.Name, Active: n.Active})
			if len(n.Children) > 0 {
				path[n.ID] = true
				walk(n.Children, depth+1)
				delete(path, n.ID)
			}
		}
	}
	walk(nodes, 0)
	return out
}
