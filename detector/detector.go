package detector

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/iw2rmb/mdfence/buffer"
	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/fence"
)

// Locator finds the fence enclosing an offset. *fence.Scanner implements it.
type Locator interface {
	Locate(doc *buffer.Snapshot, offset int) (fence.Fence, bool, error)
}

// LocatorFunc adapts a function such as fence.Locate to a Locator.
type LocatorFunc func(doc *buffer.Snapshot, offset int) (fence.Fence, bool, error)

func (f LocatorFunc) Locate(doc *buffer.Snapshot, offset int) (fence.Fence, bool, error) {
	return f(doc, offset)
}

// SwapCommand is the capability set the editor should activate.
type SwapCommand struct {
	Context fence.Context
	// Bundle is nil in prose and in fences whose tag is not recognized.
	Bundle *capability.Bundle
	// Structural enables markdown structure completions. It is false only for
	// recognized fence languages, whose bundles supply their own.
	Structural bool
}

type Options struct {
	Registry *capability.Registry // default: capability.Default()
	Locator  Locator              // default: a new fence.Scanner
	Logger   *slog.Logger         // default: slog.Default()
}

// Detector tracks the last emitted context of one editing session. Calls are
// serialized, so a Detector may be shared by a multi-threaded host.
type Detector struct {
	mu   sync.Mutex
	reg  *capability.Registry
	loc  Locator
	log  *slog.Logger
	last fence.Context
}

func New(opts Options) *Detector {
	if opts.Registry == nil {
		opts.Registry = capability.Default()
	}
	if opts.Locator == nil {
		opts.Locator = fence.NewScanner()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Detector{
		reg: opts.Registry,
		loc: opts.Locator,
		log: opts.Logger,
	}
}

// OnPositionChanged classifies offset in doc. It returns ok=false when the
// context equals the last emitted one. An out-of-range offset returns an
// error and leaves the state untouched.
func (d *Detector) OnPositionChanged(doc *buffer.Snapshot, offset int) (SwapCommand, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, inside, err := d.loc.Locate(doc, offset)
	if err != nil {
		return SwapCommand{}, false, fmt.Errorf("detector: %w", err)
	}
	next := fence.ContextOf(f, inside)
	if next == d.last {
		return SwapCommand{}, false, nil
	}

	prev := d.last
	d.last = next
	cmd := Command(d.reg, next)
	d.log.Debug("capability swap",
		"from", prev.String(),
		"to", next.String(),
		"bundle", bundleName(cmd.Bundle),
		"structural", cmd.Structural,
		"offset", offset,
	)
	return cmd, true, nil
}

// Command builds the swap command for ctx without touching detector state.
func Command(reg *capability.Registry, ctx fence.Context) SwapCommand {
	cmd := SwapCommand{Context: ctx}
	if ctx.Kind == fence.InFence {
		cmd.Bundle = reg.Resolve(ctx.Lang)
	}
	cmd.Structural = cmd.Bundle == nil
	return cmd
}

// Last returns the last emitted context.
func (d *Detector) Last() fence.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Reset starts a new session: the next report is compared against Prose.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = fence.Context{Kind: fence.Prose}
	if r, ok := d.loc.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func bundleName(b *capability.Bundle) string {
	if b == nil {
		return ""
	}
	return b.Name()
}
