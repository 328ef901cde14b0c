package cli

import "testing"

func TestGetStatus_Empty(t *testing.T) {
	a := &App{}
	got := a.getStatus()
	if got != "" {
		t.Fatalf("want empty status, got %q", got)
	}
}

func TestGetStatus_WithMode(t *testing.T) {
	a := &App{Mode: ModeOffline}
	got := a.getStatus()
	want := "(offline)"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
