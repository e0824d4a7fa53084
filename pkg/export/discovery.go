package export

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inkwellco/inkwell/pkg/fsutil"
)

// Discover finds Markdown files under the given paths. Directories are
// walked recursively, hidden files and directories are skipped, and
// the returned list is deterministically sorted.
func Discover(ctx context.Context, opts BatchOptions) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	paths := opts.effectivePaths()
	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, workDir, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
			continue
		}

		// An explicitly named file bypasses the extension filter so
		// that "inkwell export notes.txt" does what it says.
		if _, ok := seen[absPath]; !ok && !isExcluded(absPath, workDir, opts.ExcludeGlobs) {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func walkDirectory(ctx context.Context, root, workDir string, opts BatchOptions) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if isExcluded(path, workDir, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		// Directory symlinks are not followed; a broken or directory
		// symlink is skipped, a file symlink is treated as its target.
		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || info.IsDir() {
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if fsutil.IsMarkdownFile(path) && !isExcluded(path, workDir, opts.ExcludeGlobs) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// isExcluded matches the path, relative to workDir, against the
// exclude globs. Patterns apply to the relative path, the base name,
// and with "dir/**" to everything under dir.
func isExcluded(path, workDir string, globs []string) bool {
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range globs {
		pattern = filepath.ToSlash(pattern)

		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			if relPath == prefix || strings.HasPrefix(relPath, prefix+"/") {
				return true
			}
			continue
		}
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
			for _, part := range strings.Split(relPath, "/") {
				if matched, _ := filepath.Match(suffix, part); matched {
					return true
				}
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(relPath)); matched {
			return true
		}
	}
	return false
}
