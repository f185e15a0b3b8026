package ui

import (
	"strings"
	"testing"
)

func TestConfigureTheme(t *testing.T) {
	t.Cleanup(func() { ConfigureTheme(defaultAccent) })

	t.Run("none disables styling", func(t *testing.T) {
		ConfigureTheme("none")
		if out := Accent.Render("path"); out != "path" {
			t.Errorf("expected plain output, got %q", out)
		}
		if _, ok := AccentColor(); ok {
			t.Error("AccentColor should report disabled")
		}
	})

	t.Run("custom accent", func(t *testing.T) {
		ConfigureTheme("#FF0000")
		color, ok := AccentColor()
		if !ok || color != "#FF0000" {
			t.Errorf("accent = %q ok=%v", color, ok)
		}
	})

	t.Run("empty keeps current", func(t *testing.T) {
		ConfigureTheme("#FF0000")
		ConfigureTheme("")
		if color, _ := AccentColor(); color != "#FF0000" {
			t.Errorf("accent = %q, want #FF0000", color)
		}
	})
}

func TestCounts(t *testing.T) {
	if got := Count(1, "error", "errors"); got != "(1 error)" {
		t.Errorf("Count = %q", got)
	}
	if got := Count(3, "error", "errors"); got != "(3 errors)" {
		t.Errorf("Count = %q", got)
	}
	if got := ErrorWarningCounts(2, 1); got != "(2 errors, 1 warning)" {
		t.Errorf("ErrorWarningCounts = %q", got)
	}
	if got := ErrorWarningCounts(0, 2); got != "(2 warnings)" {
		t.Errorf("ErrorWarningCounts = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome text.", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading: %q", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Error("output should end with exactly one newline")
	}
}
