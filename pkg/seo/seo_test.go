package seo

import (
	"context"
	"testing"
)

type page struct{ meta Meta }

func (p page) SEO() Meta { return p.meta }

func TestMerge(t *testing.T) {
	defaults := Meta{Title: "Site", Description: "default", Keywords: "a,b"}
	got := Merge(defaults, Meta{Title: "Dashboard", Description: ""})

	want := Meta{Title: "Dashboard", Description: "default", Keywords: "a,b"}
	if len(got) != len(want) {
		t.Fatalf("Merge() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Merge()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if defaults[Title] != "Site" {
		t.Error("Merge() modified defaults")
	}
}

func TestMergeNil(t *testing.T) {
	if got := Merge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("Merge(nil, nil) = %v, want empty map", got)
	}
}

func TestOf(t *testing.T) {
	if got := Of(page{meta: Meta{Title: "x"}}); got[Title] != "x" {
		t.Errorf("Of(provider)[title] = %q, want %q", got[Title], "x")
	}
	if got := Of(42); got != nil {
		t.Errorf("Of(42) = %v, want nil", got)
	}
}

func TestKeys(t *testing.T) {
	keys := Meta{"b": "1", "a": "2", "c": "3"}.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("Keys() = %v, want [a b c]", keys)
	}
}

func TestUpdaterFunc(t *testing.T) {
	var seen Meta
	u := UpdaterFunc(func(_ context.Context, m Meta) error {
		seen = m
		return nil
	})
	if err := u.UpdateMeta(context.Background(), Meta{Title: "t"}); err != nil {
		t.Fatal(err)
	}
	if seen[Title] != "t" {
		t.Errorf("updater saw %v", seen)
	}
}
