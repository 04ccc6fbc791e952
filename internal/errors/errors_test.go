package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "duplicate route",
			code:    "E201",
			wantMsg: "Duplicate route",
			wantCat: CategoryRouting,
		},
		{
			name:    "malformed registry",
			code:    "E220",
			wantMsg: "Malformed hook registry entry",
			wantCat: CategoryHook,
		},
		{
			name:    "readiness timeout",
			code:    "E260",
			wantMsg: "Readiness timeout",
			wantCat: CategoryStartup,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "vnp.json")
	if err.Message != `file "vnp.json" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() = %q, want message only", err.Error())
	}
}

func TestErrorStringIncludesWrapped(t *testing.T) {
	err := New("E201").Wrap(stderrors.New("/dashboard"))
	if got, want := err.Error(), "E201: Duplicate route: /dashboard"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapAndFromError(t *testing.T) {
	base := stderrors.New("boom")
	err := New("E221").Wrap(base)
	if !stderrors.Is(err, base) {
		t.Error("errors.Is should see the wrapped error")
	}

	if FromError(nil, "E221") != nil {
		t.Error("FromError(nil) should be nil")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if got := FromError(wrapped, "E999"); got != err {
		t.Error("FromError should return the *Error found in the chain")
	}

	plain := FromError(base, "E120")
	if plain.Code != "E120" || plain.Wrapped != base {
		t.Errorf("FromError(plain) = %+v", plain)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E201").
		AtRoute("/dashboard", "Dashboard", "dashboard").
		WithSuggestion("Rename one of the folders").
		Wrap(stderrors.New("two folders"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E201: Duplicate route",
		"/dashboard (Dashboard, dashboard)",
		"Cause: two folders",
		"Hint: Rename one of the folders",
		"Docs: https://vnp.dev/docs/errors/E201",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not color output when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New("E240").InFile("app/pages/Home/home.go"), "app/pages/Home/home.go: E240: Component not found"},
		{New("E203").AtRoute("/notfound"), "/notfound: E203: Duplicate not-found page"},
		{Newf(CategoryCLI, "plain"), "plain"},
	}
	for _, tt := range tests {
		if got := tt.err.FormatCompact(); got != tt.want {
			t.Errorf("FormatCompact() = %q, want %q", got, tt.want)
		}
	}
}

func TestWriteWrapped(t *testing.T) {
	var b strings.Builder
	writeWrapped(&b, strings.Repeat("word ", 30), "  ")
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		if len(line) > 74 {
			t.Errorf("line too long (%d): %q", len(line), line)
		}
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("line not indented: %q", line)
		}
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("E200"); !ok {
		t.Error("E200 should be registered")
	}
	if _, ok := Lookup("E001"); ok {
		t.Error("E001 should not be registered")
	}
}
