package treemap

import (
	"testing"

	"pgregory.net/rapid"
)

// checkBalanced walks the tree verifying every node's balance is in
// {-1,0,1} and returns the subtree height, failing t if an invariant is
// violated (§4.D invariant 2).
func checkBalanced[K comparable, V any](t *testing.T, n *node[K, V]) int {
	t.Helper()
	if n == nil {
		return 0
	}
	if n.balance < -1 || n.balance > 1 {
		t.Fatalf("node balance %d out of range", n.balance)
	}
	lh := checkBalanced(t, n.left)
	rh := checkBalanced(t, n.right)
	if n.left != nil && n.left.parent != n {
		t.Fatalf("left child parent pointer broken")
	}
	if n.right != nil && n.right.parent != n {
		t.Fatalf("right child parent pointer broken")
	}
	wantBalance := rh - lh
	if int(n.balance) != wantBalance {
		t.Fatalf("node balance %d does not match actual height delta %d", n.balance, wantBalance)
	}
	if h := lh; h > rh {
		return h + 1
	}
	return rh + 1
}

// TestAVLBalanceInvariantUnderRandomOps performs randomized sequences of
// insert/remove and verifies the AVL balance invariant holds after every
// single operation, per §4.D invariant 2.
func TestAVLBalanceInvariantUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := &tree[int, int]{cmp: Natural[int]()}
		present := map[int]bool{}

		ops := rapid.SliceOfN(rapid.IntRange(0, 60), 1, 200).Draw(rt, "ops")
		for _, k := range ops {
			if present[k] {
				deleteKey(tr, k)
				present[k] = false
			} else {
				insert(tr, k, k)
				present[k] = true
			}
			checkBalanced(t, tr.root)
		}

		want := 0
		for _, ok := range present {
			if ok {
				want++
			}
		}
		if tr.size != want {
			t.Fatalf("size %d, want %d", tr.size, want)
		}
	})
}
