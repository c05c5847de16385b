package knuthbendix

// ruleTrie indexes the active rules by their left sides so that the
// rewriting engine can answer "which is the longest active lhs that is a
// suffix of this window?" in a single right-to-left walk.
//
// Keys are stored reversed, one trie edge per letter, so the key bytes are
// frozen into the structure at insertion time; the trie never holds a live
// view into a rule's mutable buffers. An active rule's lhs does not change
// until after it has been deactivated and erased, so erase walks the same
// bytes that insert did.
//
// Invariant: size equals the number of active rules at every point where the
// engine's public interface can observe the index.
type ruleTrie struct {
	root trieNode
	size int
}

type trieNode struct {
	children map[byte]*trieNode
	r        *rule
}

// insert adds r's lhs to the index. The lhs must not collide with an
// existing key; the completion loop guarantees this by removing redundant
// rules before activating a new one.
func (t *ruleTrie) insert(r *rule) {
	n := &t.root
	for i := len(r.lhs) - 1; i >= 0; i-- {
		c := r.lhs[i]
		if n.children == nil {
			n.children = make(map[byte]*trieNode)
		}
		child := n.children[c]
		if child == nil {
			child = &trieNode{}
			n.children[c] = child
		}
		n = child
	}
	n.r = r
	t.size++
}

// erase removes r's lhs from the index, pruning nodes that no longer carry
// a rule or a child.
func (t *ruleTrie) erase(r *rule) {
	path := make([]*trieNode, 0, len(r.lhs)+1)
	n := &t.root
	path = append(path, n)
	for i := len(r.lhs) - 1; i >= 0; i-- {
		n = n.children[r.lhs[i]]
		if n == nil {
			return // not indexed; nothing to erase
		}
		path = append(path, n)
	}
	if n.r == nil {
		return
	}
	n.r = nil
	t.size--
	for i := len(path) - 1; i > 0; i-- {
		node := path[i]
		if node.r != nil || len(node.children) > 0 {
			break
		}
		delete(path[i-1].children, r.lhs[len(r.lhs)-i])
	}
}

// longestSuffix returns the rule with the longest lhs that is a suffix of w,
// or nil if no active lhs is a suffix of w.
func (t *ruleTrie) longestSuffix(w []byte) *rule {
	n := &t.root
	var best *rule
	for i := len(w) - 1; i >= 0; i-- {
		n = n.children[w[i]]
		if n == nil {
			break
		}
		if n.r != nil {
			best = n.r
		}
	}
	return best
}
