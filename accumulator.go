package codec

import "fmt"

// BlockRule supplies the bit-packing callbacks of one alphabet direction.
type BlockRule interface {
	// BlockSize is the number of input units per block.
	BlockSize() int
	// Flush receives every full block.
	Flush(block []byte)
	// Finalize receives the trailing partial block; len(block) is the modulus and is always
	// smaller than BlockSize. A modulus that cannot be decoded unambiguously must fail with
	// ErrMalformedInput.
	Finalize(block []byte) error
}

// Accumulator batches units into blocks of BlockSize and hands them to its BlockRule.
// It knows nothing about character sets.
type Accumulator struct {
	rule  BlockRule
	block []byte
	count int
}

// NewAccumulator returns an Accumulator for rule.
func NewAccumulator(rule BlockRule) (*Accumulator, error) {
	size := rule.BlockSize()
	if size < 1 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidArgument, size)
	}
	return &Accumulator{rule: rule, block: make([]byte, size)}, nil
}

// Update appends unit and flushes the block once it is full.
func (a *Accumulator) Update(unit byte) {
	a.block[a.count] = unit
	a.count++
	if a.count == len(a.block) {
		a.count = 0
		a.rule.Flush(a.block)
	}
}

// Finalize hands the pending partial block to the rule and resets the accumulator.
func (a *Accumulator) Finalize() error {
	n := a.count
	a.count = 0
	err := a.rule.Finalize(a.block[:n])
	clear(a.block)
	return err
}

// Count returns the number of pending units.
func (a *Accumulator) Count() int { return a.count }

// release drops pending units and the rule.
func (a *Accumulator) release() {
	clear(a.block)
	a.count = 0
	a.rule = nil
}
