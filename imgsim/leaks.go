package imgsim

import (
	"fmt"
	"sort"
)

// Leak is a test image that also appears, exactly or nearly, in trainval
type Leak struct {
	Test     string
	Trainval string
	Distance int
	Exact    bool
}

// FindLeaks pairs every test image with its closest trainval image and
// reports the pairs whose hamming distance is within threshold (0-64).
// Byte-identical files are always reported.
func FindLeaks(trainval, test []Fingerprint, threshold int) ([]Leak, error) {
	if threshold < 0 || threshold > 64 {
		return nil, fmt.Errorf("threshold must be in [0,64], got %d", threshold)
	}

	byCRC := make(map[uint32]string, len(trainval))
	for _, fp := range trainval {
		byCRC[fp.CRC] = fp.ID
	}

	var leaks []Leak
	for _, tfp := range test {
		if id, ok := byCRC[tfp.CRC]; ok {
			leaks = append(leaks, Leak{Test: tfp.ID, Trainval: id, Exact: true})
			continue
		}

		best, bestID := -1, ""
		for _, fp := range trainval {
			d, err := tfp.Hash.Distance(fp.Hash)
			if err != nil {
				return nil, fmt.Errorf("comparing %s and %s: %w", tfp.ID, fp.ID, err)
			}
			if best < 0 || d < best {
				best, bestID = d, fp.ID
			}
		}
		if best >= 0 && best <= threshold {
			leaks = append(leaks, Leak{Test: tfp.ID, Trainval: bestID, Distance: best})
		}
	}

	sort.Slice(leaks, func(i, j int) bool {
		if leaks[i].Distance != leaks[j].Distance {
			return leaks[i].Distance < leaks[j].Distance
		}
		return leaks[i].Test < leaks[j].Test
	})
	return leaks, nil
}
