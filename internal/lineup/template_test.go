package lineup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	input := strings.Join([]string{
		"央视,#genre#",
		"CCTV1",
		"CCTV2",
		"",
		"卫视,#genre#",
		"湖南卫视",
	}, "\n")

	tpl, err := ParseTemplate(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTemplate returned error: %v", err)
	}
	if len(tpl) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(tpl))
	}
	if tpl[0].Name != "央视" || tpl[1].Name != "卫视" {
		t.Fatalf("unexpected category names: %v", tpl)
	}
	if len(tpl[0].Channels) != 2 || tpl[0].Channels[0] != "CCTV1" || tpl[0].Channels[1] != "CCTV2" {
		t.Fatalf("unexpected channels for first category: %v", tpl[0].Channels)
	}
	if len(tpl[1].Channels) != 1 || tpl[1].Channels[0] != "湖南卫视" {
		t.Fatalf("unexpected channels for second category: %v", tpl[1].Channels)
	}
}

func TestParseTemplateIgnoresPreamble(t *testing.T) {
	input := strings.Join([]string{
		"stray channel before any category",
		"News,#genre#",
		"CNN",
	}, "\n")

	tpl, err := ParseTemplate(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTemplate returned error: %v", err)
	}
	if len(tpl) != 1 || len(tpl[0].Channels) != 1 {
		t.Fatalf("expected preamble line dropped, got %v", tpl)
	}
}

func TestParseTemplateEmpty(t *testing.T) {
	tpl, err := ParseTemplate(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseTemplate returned error: %v", err)
	}
	if len(tpl) != 0 {
		t.Fatalf("expected empty template, got %v", tpl)
	}
}

func TestLoadTemplateMissing(t *testing.T) {
	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing template file")
	}
}

func TestLoadTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.txt")
	if err := os.WriteFile(path, []byte("News,#genre#\nCNN\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate returned error: %v", err)
	}
	if len(tpl) != 1 || tpl[0].Name != "News" {
		t.Fatalf("unexpected template: %v", tpl)
	}
}
