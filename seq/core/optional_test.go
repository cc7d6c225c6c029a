package core

import (
	"errors"
	"testing"
)

func TestOptional(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		o := Some(0)
		if !o.IsPresent() || o.IsEmpty() {
			t.Fatal("Some(0) must be present even for the zero value")
		}
		if v, ok := o.Get(); !ok || v != 0 {
			t.Errorf("Get() = %d, %v", v, ok)
		}
		if got := o.OrElse(7); got != 0 {
			t.Errorf("OrElse() = %d", got)
		}
		if got, err := o.OrError(); err != nil || got != 0 {
			t.Errorf("OrError() = %d, %v", got, err)
		}
		if o.String() != "Some(0)" {
			t.Errorf("String() = %q", o.String())
		}
	})

	t.Run("absent", func(t *testing.T) {
		o := None[string]()
		if o.IsPresent() {
			t.Fatal("None() is present")
		}
		if got := o.OrElse("x"); got != "x" {
			t.Errorf("OrElse() = %q", got)
		}
		if got, err := o.OrElseGet(Supply(func() string { return "y" })); err != nil || got != "y" {
			t.Errorf("OrElseGet() = %q, %v", got, err)
		}
		if _, err := o.OrError(); !errors.Is(err, ErrNoSuchElement) {
			t.Errorf("OrError() error = %v", err)
		}
		o.IfPresent(func(string) { t.Error("IfPresent ran on None") })
		if o.String() != "None" {
			t.Errorf("String() = %q", o.String())
		}
	})

	t.Run("supplier not called when present", func(t *testing.T) {
		got, err := Some(1).OrElseGet(func() (int, error) { return 0, errBoom })
		if err != nil || got != 1 {
			t.Errorf("OrElseGet() = %d, %v", got, err)
		}
	})
}

func TestPair(t *testing.T) {
	p := PairOf("a", 1)
	if p.Key != "a" || p.Value != 1 || p.String() != "(a, 1)" {
		t.Errorf("PairOf() = %+v (%s)", p, p)
	}
}
