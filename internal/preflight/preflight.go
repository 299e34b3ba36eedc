// Package preflight verifies the environment a pipeline run depends on:
// required input files, writable output locations, and disk headroom.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"antenna/internal/config"
	"antenna/internal/lineup"
)

// minFreeBytes is the disk headroom required in the output directory.
const minFreeBytes = 64 << 20

// Result captures the outcome of one environment check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// CheckTemplate verifies the lineup template exists and parses to at least
// one category.
func CheckTemplate(path string) Result {
	const name = "Lineup template"

	tpl, err := lineup.LoadTemplate(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if len(tpl) == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no categories)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d categories)", path, len(tpl))}
}

// CheckOptionalFile reports whether an optional input file is present. A
// missing file passes with a note since the pipeline degrades gracefully.
func CheckOptionalFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (absent, defaults apply)", path)}
		}
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (present)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has headroom for the
// output document.
func CheckDiskSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: only %d bytes free)", path, free)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}

// CheckSource probes one playlist source for reachability. Failures are
// optional findings: a run still proceeds and the source just contributes
// nothing.
func CheckSource(ctx context.Context, url string) Result {
	name := "Source " + url

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("probe failed (%v)", err)}
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
}

// RunAll evaluates every environment check for the given config. Source
// probes are skipped when probeSources is false to keep the check fast and
// offline-safe.
func RunAll(ctx context.Context, cfg *config.Config, sourceURLs []string, probeSources bool) []Result {
	results := []Result{
		CheckTemplate(cfg.Paths.TemplateFile),
		CheckOptionalFile("Source list", cfg.Paths.SourcesFile),
		CheckOptionalFile("Alias mapping", cfg.Paths.MappingFile),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Output directory", filepath.Dir(cfg.Paths.OutputFile)),
		CheckDiskSpace("Output disk space", filepath.Dir(cfg.Paths.OutputFile)),
	}
	if probeSources {
		for _, url := range sourceURLs {
			results = append(results, CheckSource(ctx, url))
		}
	}
	return results
}

// RequiredPassed reports whether every non-optional check passed.
func RequiredPassed(results []Result) bool {
	for _, result := range results {
		if !result.Optional && !result.Passed {
			return false
		}
	}
	return true
}
