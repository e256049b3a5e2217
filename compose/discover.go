package compose

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// composeFilePatterns are the file names recognized as compose files when
// searching a directory.
var composeFilePatterns = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"docker-compose.*.yml",
	"docker-compose.*.yaml",
	"compose.yml",
	"compose.yaml",
}

// mainComposeFiles are the canonical compose file names, sorted ahead of
// overrides and variants.
var mainComposeFiles = map[string]bool{
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
	"compose.yml":         true,
	"compose.yaml":        true,
}

// FindComposeFiles returns the compose files in dir, sorted with
// [SortComposeFiles].
func FindComposeFiles(dir string) []string {
	var files []string

	for _, pattern := range composeFilePatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}

		files = append(files, matches...)
	}

	return SortComposeFiles(DedupePaths(files))
}

// SortComposeFiles orders compose files for rendering: main files first,
// then override files, then everything else, each group alphabetical.
func SortComposeFiles(files []string) []string {
	var main, overrides, others []string

	for _, file := range files {
		base := filepath.Base(file)

		switch {
		case mainComposeFiles[base]:
			main = append(main, file)
		case strings.Contains(base, "override"):
			overrides = append(overrides, file)
		default:
			others = append(others, file)
		}
	}

	sort.Strings(main)
	sort.Strings(overrides)
	sort.Strings(others)

	result := make([]string, 0, len(files))
	result = append(result, main...)
	result = append(result, overrides...)
	result = append(result, others...)

	return result
}

// CollectComposeFiles gathers compose files from a mix of file and
// directory paths. Files are kept as-is, directories are searched with
// [FindComposeFiles], and missing paths are logged and skipped.
func CollectComposeFiles(paths []string) []string {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			slog.Warn("path not found, skipping", slog.String("path", path))

			continue
		}

		if info.IsDir() {
			files = append(files, FindComposeFiles(path)...)

			continue
		}

		files = append(files, path)
	}

	return DedupePaths(files)
}

// CollectComposeFilesFromGlobs expands glob patterns into compose files,
// deduplicated and sorted with [SortComposeFiles].
func CollectComposeFilesFromGlobs(globs []string) []string {
	var files []string

	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			slog.Warn("invalid glob pattern, skipping",
				slog.String("pattern", pattern),
				slog.Any("error", err),
			)

			continue
		}

		files = append(files, matches...)
	}

	return SortComposeFiles(DedupePaths(files))
}

// SplitPathList splits a semicolon-separated path list, trimming
// whitespace and dropping empty entries.
func SplitPathList(s string) []string {
	var paths []string

	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			paths = append(paths, part)
		}
	}

	return paths
}

// DedupePaths removes duplicate paths, comparing absolute forms,
// preserving first-seen order.
func DedupePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))

	var unique []string

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		if seen[abs] {
			continue
		}

		seen[abs] = true
		unique = append(unique, path)
	}

	return unique
}

// PathRewriter returns a display-path function that rewrites matching
// prefixes according to rules, longest prefix first. Use it with
// [WithDisplayPath] to map container mount paths back to host paths, e.g.
// {"/data": "."}.
func PathRewriter(rules map[string]string) func(string) string {
	prefixes := make([]string, 0, len(rules))
	for from := range rules {
		prefixes = append(prefixes, from)
	}

	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}

		return prefixes[i] < prefixes[j]
	})

	return func(path string) string {
		for _, from := range prefixes {
			if strings.HasPrefix(path, from) {
				return rules[from] + strings.TrimPrefix(path, from)
			}
		}

		return path
	}
}
