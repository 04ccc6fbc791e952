package hooks

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// recorder collects hook invocations in order.
type recorder struct {
	calls []string
}

func (r *recorder) gate(name string, d Decision) GateFunc {
	return func(context.Context, Transition) (Decision, error) {
		r.calls = append(r.calls, name)
		return d, nil
	}
}

func (r *recorder) failing(name string, err error) GateFunc {
	return func(context.Context, Transition) (Decision, error) {
		r.calls = append(r.calls, name)
		return Allow, err
	}
}

func (r *recorder) notify(name string) NotifyFunc {
	return func(context.Context, Transition) {
		r.calls = append(r.calls, name)
	}
}

func runBefore(t *testing.T, c Composed) Decision {
	t.Helper()
	if c.Before == nil {
		t.Fatal("Before is nil")
	}
	d, err := c.Before(context.Background(), Transition{})
	if err != nil {
		t.Fatalf("Before() error = %v", err)
	}
	return d
}

func TestResolveCascadingGuard(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/dash":         {Before: rec.gate("guardA", Allow), Cascading: true},
		"/dash/profile": {Before: rec.gate("guardB", Allow)},
	}

	c := Resolve("/dash/profile", reg)
	if d := runBefore(t, c); d != Allow {
		t.Errorf("decision = %v, want allow", d)
	}
	if want := []string{"guardA", "guardB"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestResolveAncestorDenyShortCircuits(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/dash":         {Before: rec.gate("guardA", Deny), Cascading: true},
		"/dash/profile": {Before: rec.gate("guardB", Allow)},
	}

	if d := runBefore(t, Resolve("/dash/profile", reg)); d != Deny {
		t.Errorf("decision = %v, want deny", d)
	}
	if want := []string{"guardA"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestResolveSegmentBoundary(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/dash": {Before: rec.gate("dash", Deny), Cascading: true},
	}
	if c := Resolve("/dashboard", reg); !c.IsZero() {
		t.Error("/dash must not cascade into /dashboard")
	}
	if c := Resolve("/dash", reg); c.Before == nil {
		t.Error("cascading entry must apply to its own route")
	}
}

func TestResolveRootCascadesEverywhere(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/":      {After: rec.notify("root"), Cascading: true},
		"/about": {After: rec.notify("about")},
	}
	for _, route := range []string{"/", "/about", "/a/b/c"} {
		if Resolve(route, reg).After == nil {
			t.Errorf("Resolve(%q).After = nil, want root hook", route)
		}
	}
	rec.calls = nil
	Resolve("/about", reg).After(context.Background(), Transition{})
	if want := []string{"root", "about"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestResolveAncestorOrderAndDedup(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/dashboard/profile":      {Before: rec.gate("profile", Allow), Cascading: true},
		"/dashboard":              {Before: rec.gate("dashboard", Allow), Cascading: true},
		"/dashboard/profile/edit": {Before: rec.gate("edit", Allow)},
	}

	runBefore(t, Resolve("/dashboard/profile/edit", reg))
	if want := []string{"dashboard", "profile", "edit"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("edit chain = %v, want %v", rec.calls, want)
	}

	rec.calls = nil
	runBefore(t, Resolve("/dashboard/profile", reg))
	if want := []string{"dashboard", "profile"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("profile chain = %v, want %v (own entry must not run twice)", rec.calls, want)
	}
}

func TestResolveSingleHookUnchanged(t *testing.T) {
	var called int
	gate := func(context.Context, Transition) (Decision, error) {
		called++
		return Allow, nil
	}
	c := Resolve("/terms", Registry{"/terms": {Before: gate}})
	if reflect.ValueOf(c.Before).Pointer() != reflect.ValueOf(GateFunc(gate)).Pointer() {
		t.Error("single hook should be returned unchanged")
	}
}

func TestResolveNoHooks(t *testing.T) {
	reg := Registry{"/other": {Before: DenyAll}}
	if c := Resolve("/terms", reg); !c.IsZero() {
		t.Errorf("Resolve() = %+v, want zero", c)
	}
}

func TestResolveOmitsEmptyPhases(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/dashboard":         {Before: rec.gate("auth", Allow), Cascading: true},
		"/dashboard/profile": {After: rec.notify("analytics")},
	}
	c := Resolve("/dashboard/profile", reg)
	if c.Before == nil || c.After == nil {
		t.Fatalf("Resolve() = %+v", c)
	}
	if c.Leave != nil || c.Already != nil {
		t.Error("phases without hooks must be nil")
	}
}

func TestResolveLeaveShortCircuits(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/editor":       {Leave: rec.gate("unsaved", Deny), Cascading: true},
		"/editor/draft": {Leave: rec.gate("draft", Allow)},
	}
	d, err := Resolve("/editor/draft", reg).Leave(context.Background(), Transition{})
	if err != nil || d != Deny {
		t.Errorf("Leave() = %v, %v, want deny", d, err)
	}
	if want := []string{"unsaved"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestResolveNotificationsDoNotShortCircuit(t *testing.T) {
	rec := &recorder{}
	reg := Registry{
		"/":           {Already: rec.notify("a"), Cascading: true},
		"/docs":       {Already: rec.notify("b"), Cascading: true},
		"/docs/intro": {Already: rec.notify("c")},
	}
	Resolve("/docs/intro", reg).Already(context.Background(), Transition{})
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestResolveNotificationPanicDoesNotSkipRest(t *testing.T) {
	boom := func(context.Context, Transition) { panic("boom") }

	tests := []struct {
		name  string
		reg   func(rec *recorder) Registry
		phase func(c Composed) NotifyFunc
	}{
		{
			name: "after",
			reg: func(rec *recorder) Registry {
				return Registry{
					"/dash":         {After: boom, Cascading: true},
					"/dash/profile": {After: rec.notify("own")},
				}
			},
			phase: func(c Composed) NotifyFunc { return c.After },
		},
		{
			name: "already",
			reg: func(rec *recorder) Registry {
				return Registry{
					"/":             {Already: rec.notify("root"), Cascading: true},
					"/dash":         {Already: boom, Cascading: true},
					"/dash/profile": {Already: rec.notify("own")},
				}
			},
			phase: func(c Composed) NotifyFunc { return c.Already },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			n := tt.phase(Resolve("/dash/profile", tt.reg(rec)))
			if n == nil {
				t.Fatal("composed notifier is nil")
			}

			func() {
				defer func() {
					if p := recover(); p != nil {
						t.Fatalf("composed notifier panicked: %v", p)
					}
				}()
				n(context.Background(), Transition{Route: "/dash/profile"})
			}()

			if len(rec.calls) == 0 || rec.calls[len(rec.calls)-1] != "own" {
				t.Errorf("calls = %v, want own hook to run last", rec.calls)
			}
		})
	}
}

func TestGatesErrorDenies(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("session lookup failed")
	g := Gates(rec.failing("auth", boom), rec.gate("next", Allow))

	d, err := g(context.Background(), Transition{})
	if d != Deny || !errors.Is(err, boom) {
		t.Errorf("Gates() = %v, %v, want deny, %v", d, err, boom)
	}
	if want := []string{"auth"}; !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestGatesCanceledContext(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := Gates(rec.gate("a", Allow), rec.gate("b", Allow))(ctx, Transition{})
	if d != Deny || !errors.Is(err, context.Canceled) {
		t.Errorf("Gates() = %v, %v, want deny, canceled", d, err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.calls)
	}
}

func TestGatesUnknownDecisionDenies(t *testing.T) {
	odd := func(context.Context, Transition) (Decision, error) { return Decision(7), nil }
	d, _ := Gates(AllowAll, odd)(context.Background(), Transition{})
	if d != Deny {
		t.Errorf("decision = %v, want deny", d)
	}
}

func TestResolveAll(t *testing.T) {
	reg := Registry{"/dashboard": {Before: DenyAll, Cascading: true}}
	got := ResolveAll([]string{"/", "/dashboard", "/dashboard/profile"}, reg)
	if len(got) != 3 {
		t.Fatalf("ResolveAll() = %d entries, want 3", len(got))
	}
	if !got["/"].IsZero() {
		t.Error("/ should have no hooks")
	}
	if got["/dashboard/profile"].Before == nil {
		t.Error("/dashboard/profile should inherit the guard")
	}
}

func TestContinuation(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ctx context.Context, t Transition, done func(bool))
		want Decision
	}{
		{"sync allow", func(_ context.Context, _ Transition, done func(bool)) { done(true) }, Allow},
		{"sync deny", func(_ context.Context, _ Transition, done func(bool)) { done(false) }, Deny},
		{"async allow", func(_ context.Context, _ Transition, done func(bool)) {
			go func() {
				time.Sleep(5 * time.Millisecond)
				done(true)
			}()
		}, Allow},
		{"first call wins", func(_ context.Context, _ Transition, done func(bool)) {
			done(false)
			done(true)
		}, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Continuation(tt.fn)(context.Background(), Transition{})
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if d != tt.want {
				t.Errorf("decision = %v, want %v", d, tt.want)
			}
		})
	}
}

func TestContinuationTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	never := Continuation(func(context.Context, Transition, func(bool)) {})
	d, err := never(ctx, Transition{})
	if d != Deny || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("decision = %v, %v, want deny, deadline exceeded", d, err)
	}
}

func TestWrap(t *testing.T) {
	var seen []string
	w := func(tag string) Wrapper {
		return func(route string, c Composed) Composed {
			seen = append(seen, tag+route)
			return c
		}
	}
	Wrap("/x", Composed{}, w("a"), nil, w("b"))
	if want := []string{"a/x", "b/x"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("wrappers = %v, want %v", seen, want)
	}
}

func TestTransitionRedirectWithoutNavigator(t *testing.T) {
	Transition{}.Redirect("/login")
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" || Deny.String() != "deny" || Decision(9).String() != "unknown" {
		t.Error("unexpected Decision strings")
	}
}
