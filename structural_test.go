// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package caps_test

import (
	"testing"

	"code.hybscloud.com/caps"
)

// counterCaps is a structural compound: three sub-handles widened to one
// externally visible token.
type counterCaps struct {
	Count caps.State[int]
	Log   caps.Stream[string]
	Limit caps.Exit[string]
}

// counterTrace is the externally observable outcome of a counter run.
type counterTrace struct {
	Exit  string
	Final int
	Log   []string
}

// incrementStep drives one increment: read the count, exit at the
// limit, announce even counts, then store the successor.
func incrementStep(n, limit int, announce func(string), exit func(string), put func(int)) {
	if n == limit {
		exit("count limit reached")
	}
	if n%2 == 0 {
		announce("Count was even")
	}
	put(n + 1)
}

// runCounterStructural composes counter, stream, and exit capabilities
// structurally and increments until the exit fires.
func runCounterStructural(amb *caps.Ambient, limit int) counterTrace {
	result, final, log := caps.RunStateStreamExit(amb, 0,
		func(st caps.State[int], sm caps.Stream[string], ex caps.Exit[string]) int {
			return caps.RunCompound(amb, func(tok caps.Token) counterCaps {
				return counterCaps{
					Count: caps.Widen(st, tok),
					Log:   caps.Widen(sm, tok),
					Limit: caps.Widen(ex, tok),
				}
			}, func(c *caps.Compound[counterCaps]) int {
				for {
					cc := c.Parts()
					incrementStep(cc.Count.Get(), limit, cc.Log.Emit, cc.Limit.Raise, cc.Count.Put)
				}
			})
		})
	e, _ := result.GetLeft()
	return counterTrace{Exit: e, Final: final, Log: log}
}

func TestCounterScenarioStructural(t *testing.T) {
	amb := caps.New()
	trace := runCounterStructural(amb, 10)

	if trace.Exit != "count limit reached" {
		t.Fatalf("got exit %q, want %q", trace.Exit, "count limit reached")
	}
	if trace.Final != 10 {
		t.Fatalf("got final state %d, want 10", trace.Final)
	}
	if len(trace.Log) != 5 {
		t.Fatalf("got %d emitted messages, want 5: %v", len(trace.Log), trace.Log)
	}
	for i, msg := range trace.Log {
		if msg != "Count was even" {
			t.Fatalf("got message %d %q, want %q", i, msg, "Count was even")
		}
	}
	if amb.Depth() != 0 {
		t.Fatalf("got depth %d after run, want 0", amb.Depth())
	}
}

func TestCompoundPartsAfterScopeExit(t *testing.T) {
	amb := caps.New()
	var leaked *caps.Compound[counterCaps]
	caps.RunStateStreamExit(amb, 0,
		func(st caps.State[int], sm caps.Stream[string], ex caps.Exit[string]) int {
			return caps.RunCompound(amb, func(tok caps.Token) counterCaps {
				return counterCaps{
					Count: caps.Widen(st, tok),
					Log:   caps.Widen(sm, tok),
					Limit: caps.Widen(ex, tok),
				}
			}, func(c *caps.Compound[counterCaps]) int {
				leaked = c
				return 0
			})
		})
	mustScopeViolation(t, "Compound.Parts", func() { leaked.Parts() })
}

func TestCompoundSubHandleDiesWithCompound(t *testing.T) {
	// A sub-handle extracted from the compound is anchored at the
	// compound token and retires with it, even though the sub-capability
	// runner is still active.
	amb := caps.New()
	caps.RunState(amb, 0, func(st caps.State[int]) int {
		type parts struct{ Count caps.State[int] }
		escaped := caps.RunCompound(amb, func(tok caps.Token) parts {
			return parts{Count: caps.Widen(st, tok)}
		}, func(c *caps.Compound[parts]) caps.State[int] {
			return c.Parts().Count
		})
		st.Put(1) // original anchor still fine
		mustScopeViolation(t, "State.Get", func() { escaped.Get() })
		return 0
	})
}

func TestCompoundForeignAnchorIsConstructionError(t *testing.T) {
	// A build callback that forgets to widen a field is rejected up
	// front, not left as a latent misbehavior.
	amb := caps.New()
	caps.RunState(amb, 0, func(st caps.State[int]) int {
		type parts struct{ Count caps.State[int] }
		mustScopeViolation(t, "RunCompound", func() {
			caps.RunCompound(amb, func(caps.Token) parts {
				return parts{Count: st} // not widened
			}, func(c *caps.Compound[parts]) int {
				return 0
			})
		})
		return 0
	})
}

func TestCompoundUnexportedHandleFieldRejected(t *testing.T) {
	// An unexported handle field cannot be read by the construction-time
	// anchor check, so it is rejected rather than silently skipped.
	amb := caps.New()
	caps.RunState(amb, 0, func(st caps.State[int]) int {
		type parts struct{ count caps.State[int] }
		mustScopeViolation(t, "RunCompound", func() {
			caps.RunCompound(amb, func(tok caps.Token) parts {
				return parts{count: caps.Widen(st, tok)}
			}, func(c *caps.Compound[parts]) int {
				return 0
			})
		})
		return 0
	})
}

func TestCompoundNonHandleFieldsIgnored(t *testing.T) {
	amb := caps.New()
	type parts struct {
		Count caps.State[int]
		Name  string
		Limit int
	}
	got, _ := caps.RunState(amb, 3, func(st caps.State[int]) int {
		return caps.RunCompound(amb, func(tok caps.Token) parts {
			return parts{Count: caps.Widen(st, tok), Name: "counter", Limit: 10}
		}, func(c *caps.Compound[parts]) int {
			return c.Parts().Count.Get() + c.Parts().Limit
		})
	})
	if got != 13 {
		t.Fatalf("got %d, want 13", got)
	}
}

func TestCompoundOfCompounds(t *testing.T) {
	// A compound handle is itself a handle and can be widened into a
	// larger compound.
	amb := caps.New()
	type inner struct{ Count caps.State[int] }
	type outer struct {
		Counter *caps.Compound[inner]
		Tag     caps.Env[string]
	}
	got, _ := caps.RunState(amb, 40, func(st caps.State[int]) string {
		return caps.RunEnv(amb, "t", func(ev caps.Env[string]) string {
			return caps.RunCompound(amb, func(tok1 caps.Token) inner {
				return inner{Count: caps.Widen(st, tok1)}
			}, func(c *caps.Compound[inner]) string {
				return caps.RunCompound(amb, func(tok2 caps.Token) outer {
					return outer{
						Counter: caps.Widen(c, tok2),
						Tag:     caps.Widen(ev, tok2),
					}
				}, func(o *caps.Compound[outer]) string {
					p := o.Parts()
					if p.Counter.Parts().Count.Modify(func(n int) int { return n + 2 }) != 42 {
						t.Fatal("nested compound state op misbehaved")
					}
					return p.Tag.Ask()
				})
			})
		})
	})
	if got != "t" {
		t.Fatalf("got %q, want %q", got, "t")
	}
}
