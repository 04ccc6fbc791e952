// Package render schedules page transitions and writes the shell document.
//
// # Scheduler
//
// A Scheduler owns at most one pending transition. Render marks the display
// as leaving right away, then swaps content once the debounce delay has
// passed. A newer Render call cancels the pending one, so only the most
// recent component is ever committed:
//
//	sched := render.NewScheduler(display, render.WithDelay(200*time.Millisecond))
//	if err := sched.Render(page); err != nil {
//	    // misconfigured route; nothing changed
//	}
//
// Components are rendered to nodes when the transition commits, not when
// Render is called.
//
// # Documents
//
// WriteDocument renders the full HTML page that hosts the shell: head
// metadata, the initial body, and the thin client script.
package render
