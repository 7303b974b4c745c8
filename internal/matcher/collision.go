package matcher

import (
	"cmp"
	"slices"

	"github.com/mydehq/subrename/internal/types"
)

// CollisionKind describes how a plan entry can destroy another file.
type CollisionKind int

const (
	// CollisionDuplicate: several entries rename onto the same target.
	CollisionDuplicate CollisionKind = iota
	// CollisionOverwrite: an entry renames onto a file that a later entry
	// has not moved away yet.
	CollisionOverwrite
	// CollisionExisting: an entry renames onto a file that no entry moves,
	// such as a subtitle left unpaired.
	CollisionExisting
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionOverwrite:
		return "overwrites pending source"
	case CollisionExisting:
		return "overwrites existing file"
	default:
		return "duplicate target"
	}
}

// Collision is a target path claimed in a way that would silently
// overwrite a file when the plan runs.
type Collision struct {
	Kind    CollisionKind
	Target  string
	Indexes []int // Plan indexes involved, in execution order
}

// Collisions reports the hazards in plan. existing lists paths that stay on
// disk without being renamed. The matcher itself never drops or rewrites
// entries; callers decide whether to warn or abort.
func Collisions(plan []types.RenameOperation, existing ...string) []Collision {
	owners := make(map[string][]int)
	sourceAt := make(map[string]int)
	for i, op := range plan {
		owners[op.TargetPath] = append(owners[op.TargetPath], i)
		if !op.NoOp() {
			sourceAt[op.SourcePath] = i
		}
	}

	var out []Collision
	for target, idx := range owners {
		if len(idx) > 1 {
			out = append(out, Collision{Kind: CollisionDuplicate, Target: target, Indexes: idx})
		}
	}
	for i, op := range plan {
		if op.NoOp() {
			continue
		}
		if j, ok := sourceAt[op.TargetPath]; ok && j > i {
			out = append(out, Collision{Kind: CollisionOverwrite, Target: op.TargetPath, Indexes: []int{i, j}})
		}
		if slices.Contains(existing, op.TargetPath) {
			out = append(out, Collision{Kind: CollisionExisting, Target: op.TargetPath, Indexes: []int{i}})
		}
	}

	slices.SortFunc(out, func(a, b Collision) int {
		return cmp.Or(cmp.Compare(a.Indexes[0], b.Indexes[0]), cmp.Compare(a.Kind, b.Kind))
	})
	return out
}
