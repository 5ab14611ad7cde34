package codec

import "fmt"

// FeedState is the lifecycle stage of a Feed.
type FeedState uint8

const (
	// FeedOpen is a new Feed that has not accepted any unit yet.
	FeedOpen FeedState = iota
	// FeedConsuming is a Feed that has accepted at least one unit.
	FeedConsuming
	// FeedClosed is terminal; every operation except Close fails with ErrClosedFeed.
	FeedClosed
)

func (s FeedState) String() string {
	switch s {
	case FeedOpen:
		return "open"
	case FeedConsuming:
		return "consuming"
	case FeedClosed:
		return "closed"
	default:
		return fmt.Sprintf("FeedState(%d)", uint8(s))
	}
}

// Feed is a single-use, single-owner streaming consumer. It is not safe for concurrent use.
type Feed interface {
	// Consume pushes one unit. Any error closes the feed before it is returned.
	Consume(unit byte) error
	// Flush processes the buffered tail without closing the feed, so the same feed can
	// handle several independent chunks.
	Flush() error
	// DoFinal closes the feed and processes the buffered tail.
	DoFinal() error
	// Close is idempotent and always succeeds.
	Close() error
	State() FeedState
}

// Use runs fn against f and then calls DoFinal if fn succeeded, or Close if it failed or
// panicked, so f is never leaked half-open.
func Use[F Feed](f F, fn func(F) error) (err error) {
	done := false
	defer func() {
		if !done {
			_ = f.Close()
		}
	}()
	if err = fn(f); err != nil {
		return err
	}
	done = true
	return f.DoFinal()
}

// Translator maps one raw input unit to its symbol value.
type Translator interface {
	// Translate returns the symbol for c. When keep is false, c is dropped without error
	// (e.g. a separator the alphabet ignores).
	Translate(c byte) (symbol byte, keep bool, err error)
}

// DecodeRule is a Translator and a BlockRule for one alphabet's decode direction.
type DecodeRule interface {
	Translator
	BlockRule
}

// Terminator is implemented by rules that emit or verify a trailer exactly once, when the
// feed is finalized. Flush never calls it.
type Terminator interface {
	Terminate() error
}

func terminate(rule any) error {
	if t, ok := rule.(Terminator); ok {
		return t.Terminate()
	}
	return nil
}

// DecoderFeed turns characters into bytes. Whitespace and padding policy is applied
// here; everything else is delegated to the alphabet's DecodeRule.
type DecoderFeed struct {
	state      FeedState
	cfg        Config
	rule       DecodeRule
	acc        *Accumulator
	sawPadding bool
}

var _ Feed = (*DecoderFeed)(nil)

// NewDecoderFeed builds a DecoderFeed writing to out. newRule receives out and returns the
// alphabet's rule bound to it.
func NewDecoderFeed(cfg Config, out Output, newRule func(out Output) DecodeRule) *DecoderFeed {
	if out == nil {
		out = Discard
	}
	rule := newRule(out)
	acc, err := NewAccumulator(rule)
	if err != nil {
		panic(fmt.Sprintf("codec: decode rule %T: %v", rule, err))
	}
	return &DecoderFeed{cfg: cfg, rule: rule, acc: acc}
}

// Consume pushes one character.
func (f *DecoderFeed) Consume(c byte) error {
	if f.state == FeedClosed {
		return ErrClosedFeed
	}
	if err := f.consume(c); err != nil {
		_ = f.Close()
		return err
	}
	f.state = FeedConsuming
	return nil
}

func (f *DecoderFeed) consume(c byte) error {
	if IsWhitespace(c) {
		switch f.cfg.leniency {
		case SkipWhitespace:
			return nil
		case RejectWhitespace:
			return Malformed("whitespace %q is not allowed", c)
		}
	}
	if pad, ok := f.cfg.PaddingChar(); ok && c == pad {
		f.sawPadding = true
		return nil
	}
	if f.sawPadding {
		if IsWhitespace(c) {
			return nil
		}
		return Malformed("%q found after padding", c)
	}
	symbol, keep, err := f.rule.Translate(c)
	if err != nil {
		return err
	}
	if keep {
		f.acc.Update(symbol)
	}
	return nil
}

// Flush decodes the buffered tail and clears the padding flag, leaving the feed open.
func (f *DecoderFeed) Flush() error {
	if f.state == FeedClosed {
		return ErrClosedFeed
	}
	if err := f.acc.Finalize(); err != nil {
		_ = f.Close()
		return err
	}
	f.sawPadding = false
	return nil
}

// DoFinal closes the feed and decodes the buffered tail. The output is released afterwards.
func (f *DecoderFeed) DoFinal() error {
	if f.state == FeedClosed {
		return ErrClosedFeed
	}
	f.state = FeedClosed
	err := f.acc.Finalize()
	if err == nil {
		err = terminate(f.rule)
	}
	f.release()
	return err
}

// Close closes the feed without processing the buffered tail.
func (f *DecoderFeed) Close() error {
	f.state = FeedClosed
	f.release()
	return nil
}

func (f *DecoderFeed) State() FeedState { return f.state }

func (f *DecoderFeed) release() {
	f.acc.release()
	f.rule = nil
	f.sawPadding = false
}

// EncoderFeed turns bytes into characters, inserting line breaks as configured.
type EncoderFeed struct {
	state FeedState
	cfg   Config
	out   *LineBreakOutput
	rule  BlockRule
	acc   *Accumulator
}

var _ Feed = (*EncoderFeed)(nil)

// NewEncoderFeed builds an EncoderFeed writing to out. newRule receives the line-breaking
// wrapper around out and returns the alphabet's rule bound to it.
func NewEncoderFeed(cfg Config, out Output, newRule func(out Output) BlockRule) *EncoderFeed {
	if out == nil {
		out = Discard
	}
	lb := NewLineBreakOutput(out, cfg.LineBreakInterval())
	rule := newRule(lb)
	acc, err := NewAccumulator(rule)
	if err != nil {
		panic(fmt.Sprintf("codec: encode rule %T: %v", rule, err))
	}
	return &EncoderFeed{cfg: cfg, out: lb, rule: rule, acc: acc}
}

// Consume pushes one byte.
func (f *EncoderFeed) Consume(b byte) error {
	if f.state == FeedClosed {
		return ErrClosedFeed
	}
	f.acc.Update(b)
	f.state = FeedConsuming
	return nil
}

// Flush encodes the buffered tail (including padding) and restarts line break counting,
// leaving the feed open.
func (f *EncoderFeed) Flush() error {
	if f.state == FeedClosed {
		return ErrClosedFeed
	}
	if err := f.acc.Finalize(); err != nil {
		_ = f.Close()
		return err
	}
	f.out.Reset()
	return nil
}

// DoFinal closes the feed and encodes the buffered tail. The output is released afterwards.
func (f *EncoderFeed) DoFinal() error {
	if f.state == FeedClosed {
		return ErrClosedFeed
	}
	f.state = FeedClosed
	err := f.acc.Finalize()
	if err == nil {
		err = terminate(f.rule)
	}
	f.release()
	return err
}

// Close closes the feed without processing the buffered tail.
func (f *EncoderFeed) Close() error {
	f.state = FeedClosed
	f.release()
	return nil
}

func (f *EncoderFeed) State() FeedState { return f.state }

func (f *EncoderFeed) release() {
	f.acc.release()
	f.rule = nil
	f.out.Reset()
	f.out.release()
}
