package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver maps input file paths to output file paths.
type Resolver struct {
	OutputDir string
	// Suffix is appended to the input base name, e.g. "-filtered".
	Suffix string
	// Ext is the target extension including the dot, e.g. ".png".
	Ext string
}

// Resolve returns the output path for one input file:
//
//	Resolve("/a/img.bmp") -> "<OutputDir>/img-filtered.png"
//
// It is deterministic and performs no filesystem access. Distinct base names
// never collide; identical base names from different directories do, which
// Plan resolves.
func (r Resolver) Resolve(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(r.OutputDir, stem+r.Suffix+r.Ext)
}

// Plan assigns a collision-free output path to every input, in order. The
// first claimant of a name keeps it; later claimants get a numeric suffix
// ("img-filtered.png", "img-filtered-2.png", ...). Input order therefore
// decides ties, and the result is stable for a given input sequence.
func (r Resolver) Plan(inputs []string) []string {
	claimed := make(map[string]struct{}, len(inputs))
	outputs := make([]string, len(inputs))

	for i, input := range inputs {
		candidate := r.Resolve(input)
		if _, taken := claimed[candidate]; taken {
			stem := strings.TrimSuffix(candidate, r.Ext)
			for n := 2; ; n++ {
				next := fmt.Sprintf("%s-%d%s", stem, n, r.Ext)
				if _, taken := claimed[next]; !taken {
					candidate = next
					break
				}
			}
		}
		claimed[candidate] = struct{}{}
		outputs[i] = candidate
	}
	return outputs
}
