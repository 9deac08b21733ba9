package domain

// EvolutionNode is one species in an evolution tree. Branching
// evolutions have more than one child.
type EvolutionNode struct {
	Species   string           `json:"species"`
	EvolvesTo []*EvolutionNode `json:"evolvesTo,omitempty"`
}

// EvolutionSequence is a flattened chain, root species first.
type EvolutionSequence []string

// HasChain reports whether there is anything worth displaying.
func (s EvolutionSequence) HasChain() bool {
	return len(s) > 1
}

// Contains reports whether name is one of the sequence's species.
func (s EvolutionSequence) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// FlattenPolicy turns an evolution tree into a display sequence.
type FlattenPolicy func(root *EvolutionNode) EvolutionSequence

// FlattenPreferringFirstBranch walks the tree from the root, descending
// only into the first listed child. Alternate branches are dropped.
func FlattenPreferringFirstBranch(root *EvolutionNode) EvolutionSequence {
	seq := EvolutionSequence{}
	for node := root; node != nil; {
		seq = append(seq, node.Species)
		if len(node.EvolvesTo) == 0 {
			break
		}
		node = node.EvolvesTo[0]
	}
	return seq
}

// FlattenAllBranches is a pre-order walk over every branch, first child
// first.
func FlattenAllBranches(root *EvolutionNode) EvolutionSequence {
	seq := EvolutionSequence{}
	var walk func(n *EvolutionNode)
	walk = func(n *EvolutionNode) {
		if n == nil {
			return
		}
		seq = append(seq, n.Species)
		for _, child := range n.EvolvesTo {
			walk(child)
		}
	}
	walk(root)
	return seq
}

const (
	FlattenFirstBranch = "first-branch"
	FlattenAll         = "all-branches"
)

// FlattenPolicyByName resolves a configured policy name. Unknown names
// fall back to the first-branch policy.
func FlattenPolicyByName(name string) FlattenPolicy {
	if name == FlattenAll {
		return FlattenAllBranches
	}
	return FlattenPreferringFirstBranch
}

// EvolutionStage is one rendered step of a chain. Pokemon is nil when the
// stage's own lookup failed; the stage is then shown by name only.
type EvolutionStage struct {
	Name    string   `json:"name"`
	Pokemon *Pokemon `json:"pokemon,omitempty"`
}
