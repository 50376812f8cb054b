package idset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"

	"github.com/lepinkainen/vocprep/types"
)

// Shuffler permutes a list in place
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a PCG-backed shuffler. A negative seed draws a random one.
func NewShuffler(seed int64) Shuffler {
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// Split is a partition of an identifier list
type Split struct {
	Trainval []string
	Test     []string
}

// ValidateRatio rejects split ratios outside (0,1)
func ValidateRatio(ratio float64) error {
	if !(ratio > 0 && ratio < 1) {
		return &types.InvalidArgumentError{
			Arg:    "split ratio",
			Reason: fmt.Sprintf("must be in (0,1), got %g", ratio),
		}
	}
	return nil
}

// SplitIDs shuffles a copy of ids and cuts it at floor(len(ids)*ratio).
// ratio must be in (0,1); either half may come out empty.
func SplitIDs(ids []string, ratio float64, shuffler Shuffler) (Split, error) {
	if err := ValidateRatio(ratio); err != nil {
		return Split{}, err
	}

	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	shuffler.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	idx := int(math.Floor(float64(len(shuffled)) * ratio))
	return Split{
		Trainval: shuffled[:idx:idx],
		Test:     shuffled[idx:],
	}, nil
}

// WriteSplit writes trainval.txt and test.txt into dir
func WriteSplit(dir string, s Split) error {
	if err := WriteFile(filepath.Join(dir, TrainvalFile), s.Trainval); err != nil {
		return err
	}
	return WriteFile(filepath.Join(dir, TestFile), s.Test)
}

// Join returns the duplicate-free union of lists in shuffled order. At least
// one list is required; empty lists contribute nothing.
func Join(lists [][]string, shuffler Shuffler) ([]string, error) {
	if len(lists) == 0 {
		return nil, &types.InvalidArgumentError{Arg: "identifier lists", Reason: "at least one list is required"}
	}

	seen := make(map[string]struct{})
	var union []string
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}

	shuffler.Shuffle(len(union), func(i, j int) {
		union[i], union[j] = union[j], union[i]
	})
	return union, nil
}
