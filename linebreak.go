package codec

// LineBreakOutput wraps an Output and inserts '\n' every Interval units.
// A break is only written ahead of the next unit, so output never ends with one.
type LineBreakOutput struct {
	out      Output
	interval int
	count    int
}

// NewLineBreakOutput wraps out. An interval of 0 or less disables line breaks.
func NewLineBreakOutput(out Output, interval int) *LineBreakOutput {
	if interval < 0 {
		interval = 0
	}
	return &LineBreakOutput{out: out, interval: interval}
}

func (o *LineBreakOutput) Output(c byte) {
	if o.interval > 0 && o.count == o.interval {
		o.out.Output('\n')
		o.count = 0
	}
	o.out.Output(c)
	o.count++
}

// Reset starts a new line without emitting a break.
func (o *LineBreakOutput) Reset() { o.count = 0 }

func (o *LineBreakOutput) release() { o.out = nil }
