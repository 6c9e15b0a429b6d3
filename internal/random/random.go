// Package random provides the normal sampler used for asset returns and
// inflation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
)

// Variate draws one sample from Normal(mean, stdDev).
type Variate interface {
	Sample(mean, stdDev float64) float64
}

// Uniform yields draws in [0, 1).
type Uniform interface {
	Float64() float64
}

// Normal samples with the Box-Muller transform over a uniform source.
// It is not safe for concurrent use; give each trial its own.
type Normal struct {
	src Uniform
}

func NewNormal(src Uniform) *Normal {
	return &Normal{src: src}
}

// NewSeeded returns a reproducible sampler. Distinct streams under the same
// seed produce independent sequences.
func NewSeeded(seed int64, stream uint64) *Normal {
	return NewNormal(rand.New(rand.NewPCG(uint64(seed), stream)))
}

func (n *Normal) Sample(mean, stdDev float64) float64 {
	return mean + stdDev*n.standard()
}

func (n *Normal) standard() float64 {
	u := n.nonZero()
	v := n.nonZero()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// nonZero rejects exact zeros so log(u) stays finite.
func (n *Normal) nonZero() float64 {
	for {
		if x := n.src.Float64(); x != 0 {
			return x
		}
	}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
