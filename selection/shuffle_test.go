package selection

import (
	"reflect"
	"testing"
)

func TestShuffleOrderDeterministic(t *testing.T) {
	first := shuffleOrder(50, "0xblockhash")
	second := shuffleOrder(50, "0xblockhash")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different permutations")
	}
}

func TestShuffleOrderIsPermutation(t *testing.T) {
	order := shuffleOrder(20, "seed")
	seen := make([]bool, 20)
	for _, idx := range order {
		if idx < 0 || idx >= 20 || seen[idx] {
			t.Fatalf("not a permutation: %v", order)
		}
		seen[idx] = true
	}
}

func TestShuffleOrderVariesWithSeed(t *testing.T) {
	first := shuffleOrder(50, "block-1111")
	second := shuffleOrder(50, "block-2222")
	if reflect.DeepEqual(first, second) {
		t.Errorf("different seeds produced the same permutation")
	}
}
