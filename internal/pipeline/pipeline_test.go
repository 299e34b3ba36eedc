package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"antenna/internal/config"
	"antenna/internal/fetch"
	"antenna/internal/journal"
	"antenna/internal/pipeline"
	"antenna/internal/services"
)

func testEnv(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.SourcesFile = filepath.Join(dir, "sources.txt")
	cfg.Paths.TemplateFile = filepath.Join(dir, "template.txt")
	cfg.Paths.MappingFile = filepath.Join(dir, "mapping.txt")
	cfg.Paths.OutputFile = filepath.Join(dir, "live.txt")
	cfg.Fetch.Timeout = 5
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	return &cfg, dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func playlistServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newPipeline(t *testing.T, cfg *config.Config) (*pipeline.Pipeline, *journal.Store) {
	t.Helper()
	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return pipeline.New(cfg, nil, fetch.New(cfg, nil), store), store
}

func TestRunEndToEnd(t *testing.T) {
	cfg, _ := testEnv(t)

	one := playlistServer(t, strings.Join([]string{
		"#EXTM3U",
		`#EXTINF:-1 tvg-name="CCTV-1" group-title="央视",CCTV-1 综合`,
		"http://example.com/cctv1",
		"#EXTINF:-1,BBC",
		"http://example.com/bbc",
	}, "\n"))
	two := playlistServer(t, strings.Join([]string{
		"#EXTINF:-1,CNN",
		"http://example.com/cnn",
	}, "\n"))

	write(t, cfg.Paths.SourcesFile, one.URL+"\n"+two.URL+"\n")
	write(t, cfg.Paths.MappingFile, "CCTV-1,CCTV1\n")
	write(t, cfg.Paths.TemplateFile, strings.Join([]string{
		"央视,#genre#",
		"CCTV1",
		"",
		"News,#genre#",
		"CNN",
	}, "\n"))

	p, store := newPipeline(t, cfg)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Status != journal.StatusSuccess {
		t.Fatalf("unexpected status: %+v", summary)
	}
	if summary.SourcesTotal != 2 || summary.SourcesFetched != 2 {
		t.Fatalf("unexpected source counts: %+v", summary)
	}
	if summary.Channels != 3 || summary.Matched != 2 || summary.Unmatched != 1 {
		t.Fatalf("unexpected channel counts: %+v", summary)
	}

	data, err := os.ReadFile(cfg.Paths.OutputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := strings.Join([]string{
		"央视,#genre#",
		"CCTV1,http://example.com/cctv1",
		"",
		"News,#genre#",
		"CNN,http://example.com/cnn",
		"",
		"其它,#genre#",
		"BBC,http://example.com/bbc",
	}, "\n") + "\n"
	if string(data) != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", data, want)
	}

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != journal.StatusSuccess {
		t.Fatalf("expected journaled success run, got %v", runs)
	}
	if runs[0].OutputPath != cfg.Paths.OutputFile {
		t.Fatalf("unexpected journaled output path: %q", runs[0].OutputPath)
	}
}

func TestRunNoContentTerminatesEarly(t *testing.T) {
	cfg, _ := testEnv(t)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(down.Close)

	write(t, cfg.Paths.SourcesFile, down.URL+"\n")
	write(t, cfg.Paths.TemplateFile, "News,#genre#\nCNN\n")

	p, store := newPipeline(t, cfg)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("empty content must not be a hard failure: %v", err)
	}
	if summary.Status != journal.StatusEmpty {
		t.Fatalf("unexpected status: %+v", summary)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputFile); !os.IsNotExist(statErr) {
		t.Fatal("no output must be written when content is empty")
	}

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != journal.StatusEmpty {
		t.Fatalf("expected journaled empty run, got %v", runs)
	}
}

func TestRunMissingTemplateFails(t *testing.T) {
	cfg, _ := testEnv(t)

	server := playlistServer(t, "#EXTINF:-1,CNN\nhttp://example.com/cnn\n")
	write(t, cfg.Paths.SourcesFile, server.URL+"\n")

	p, _ := newPipeline(t, cfg)
	_, err := p.Run(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing template, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputFile); !os.IsNotExist(statErr) {
		t.Fatal("no output must be written when the template is missing")
	}
}

func TestRunEmptyTemplateTerminatesEarly(t *testing.T) {
	cfg, _ := testEnv(t)

	server := playlistServer(t, "#EXTINF:-1,CNN\nhttp://example.com/cnn\n")
	write(t, cfg.Paths.SourcesFile, server.URL+"\n")
	write(t, cfg.Paths.TemplateFile, "no categories in here\n")

	p, _ := newPipeline(t, cfg)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("empty template must not be a hard failure: %v", err)
	}
	if summary.Status != journal.StatusEmpty {
		t.Fatalf("unexpected status: %+v", summary)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputFile); !os.IsNotExist(statErr) {
		t.Fatal("no output must be written for an empty template")
	}
}

func TestRunFailedSourceDegrades(t *testing.T) {
	cfg, _ := testEnv(t)

	up := playlistServer(t, "#EXTINF:-1,CNN\nhttp://example.com/cnn\n")
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	write(t, cfg.Paths.SourcesFile, down.URL+"\n"+up.URL+"\n")
	write(t, cfg.Paths.TemplateFile, "News,#genre#\nCNN\n")

	p, _ := newPipeline(t, cfg)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Status != journal.StatusSuccess {
		t.Fatalf("unexpected status: %+v", summary)
	}
	if summary.SourcesTotal != 2 || summary.SourcesFetched != 1 {
		t.Fatalf("unexpected source counts: %+v", summary)
	}
	if summary.Channels != 1 {
		t.Fatalf("unexpected channel count: %+v", summary)
	}
}

func TestRunWithoutJournalStore(t *testing.T) {
	cfg, _ := testEnv(t)

	server := playlistServer(t, "#EXTINF:-1,CNN\nhttp://example.com/cnn\n")
	write(t, cfg.Paths.SourcesFile, server.URL+"\n")
	write(t, cfg.Paths.TemplateFile, "News,#genre#\nCNN\n")

	p := pipeline.New(cfg, nil, fetch.New(cfg, nil), nil)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Status != journal.StatusSuccess {
		t.Fatalf("unexpected status: %+v", summary)
	}
}
