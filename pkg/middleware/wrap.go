package middleware

import "github.com/vango-dev/vnp/pkg/hooks"

// wrapComposed decorates every non-nil phase of c.
func wrapComposed(c hooks.Composed,
	gate func(hooks.Phase, hooks.GateFunc) hooks.GateFunc,
	notify func(hooks.Phase, hooks.NotifyFunc) hooks.NotifyFunc,
) hooks.Composed {
	if c.Before != nil {
		c.Before = gate(hooks.PhaseBefore, c.Before)
	}
	if c.Leave != nil {
		c.Leave = gate(hooks.PhaseLeave, c.Leave)
	}
	if c.After != nil {
		c.After = notify(hooks.PhaseAfter, c.After)
	}
	if c.Already != nil {
		c.Already = notify(hooks.PhaseAlready, c.Already)
	}
	return c
}
