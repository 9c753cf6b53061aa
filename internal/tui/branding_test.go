package tui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestShowBanner(t *testing.T) {
	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("1.0.0-test")

	w.Close()
	os.Stdout = old
	out := <-outC

	if !strings.Contains(out, "Agricultural Learning Companion") {
		t.Errorf("Expected banner to contain tagline, got: %s", out)
	}
	if !strings.Contains(out, "╔") || !strings.Contains(out, "╝") {
		t.Errorf("Expected banner to contain border characters, got: %s", out)
	}
	if !strings.Contains(out, "v1.0.0-test") {
		t.Errorf("Expected banner to contain version 'v1.0.0-test', got: %s", out)
	}
}

func TestShowBannerDevVersionOmitsTag(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("dev")

	w.Close()
	os.Stdout = old
	out := <-outC

	if strings.Contains(out, "vdev") {
		t.Errorf("Dev builds should not carry a version tag, got: %s", out)
	}
}

func TestGetCompactBanner(t *testing.T) {
	message := "Test message"
	result := GetCompactBanner(message)

	if !strings.Contains(result, message) {
		t.Errorf("Expected compact banner to contain '%s', got: %s", message, result)
	}
}

func TestGetWelcomeMessage(t *testing.T) {
	result := GetWelcomeMessage()

	if !strings.Contains(result, "ctrl+s") {
		t.Errorf("Expected welcome message to mention the search shortcut, got: %s", result)
	}
}

func TestContentWrapper(t *testing.T) {
	style := ContentWrapper(80, 24)

	if style.GetWidth() != 80 {
		t.Errorf("Expected wrapper width 80, got %d", style.GetWidth())
	}
	if style.GetHeight() != 24 {
		t.Errorf("Expected wrapper height 24, got %d", style.GetHeight())
	}
}
