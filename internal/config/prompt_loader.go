package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"resumeflow/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// promptFileRef ties a configured prompt file to the operation and
// prompt type it feeds.
type promptFileRef struct {
	Path      string // As configured
	Operation string // Operation id, e.g. "analyze_keywords"
	Type      string // "system" or "user"
}

// promptFileRefs collects every configured prompt file in precedence
// order: global entries first, then pipeline-specific entries so they
// overwrite the global ones for the same operation.
func (c *Config) promptFileRefs() []promptFileRef {
	var refs []promptFileRef

	appendSet := func(prompts PromptConfig) {
		for _, op := range sortedKeys(prompts.SystemFiles) {
			refs = append(refs, promptFileRef{Path: prompts.SystemFiles[op], Operation: op, Type: "system"})
		}
		for _, op := range sortedKeys(prompts.UserFiles) {
			refs = append(refs, promptFileRef{Path: prompts.UserFiles[op], Operation: op, Type: "user"})
		}
	}

	appendSet(c.AI.CustomPrompts)
	appendSet(c.AI.Scan.CustomPrompts)
	appendSet(c.AI.Generate.CustomPrompts)

	return refs
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if m[k] != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, ref := range c.promptFileRefs() {
		absPath, err := filepath.Abs(ref.Path)
		if err != nil {
			validationErrors = append(validationErrors,
				fmt.Sprintf("invalid path for %s %s prompt: %s", ref.Type, ref.Operation, ref.Path))
			continue
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("%s %s prompt file not found: %s", ref.Type, ref.Operation, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	refs := c.promptFileRefs()
	if len(refs) == 0 {
		return nil
	}

	log.Println("[CONFIG] Starting custom prompt loading from files")
	resetLoadedPrompts()

	for _, ref := range refs {
		content, err := loadPromptFromFile(ref.Path, ref.Type, ref.Operation)
		if err != nil {
			return err
		}
		setLoadedPrompt(ref.Type, ref.Operation, content)
	}

	log.Printf("[CONFIG] Total custom prompts loaded: %d", len(refs))
	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// WatchPromptFiles watches configured prompt files and reloads their
// content when they change, so prompts can be tuned without a restart.
// Blocks until the context is cancelled. Watches the containing
// directories because editors typically replace files on save.
func (c *Config) WatchPromptFiles(ctx context.Context, logger *errors.Logger) error {
	refs := c.promptFileRefs()
	if len(refs) == 0 {
		return nil
	}

	// Index watched files by absolute path; several operations may
	// share one file.
	watched := make(map[string][]promptFileRef)
	dirs := make(map[string]bool)
	for _, ref := range refs {
		absPath, err := filepath.Abs(ref.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve prompt file path '%s': %w", ref.Path, err)
		}
		watched[absPath] = append(watched[absPath], ref)
		dirs[filepath.Dir(absPath)] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create prompt file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && logger != nil {
			logger.Warn("Failed to close prompt file watcher", "error", closeErr)
		}
	}()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch prompt directory '%s': %w", dir, err)
		}
	}

	if logger != nil {
		logger.Info("Watching prompt files for changes",
			"files", len(watched),
			"directories", len(dirs))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			refs, isWatched := watched[filepath.Clean(event.Name)]
			if !isWatched {
				continue
			}
			for _, ref := range refs {
				reloadPromptFile(ref, logger)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("Prompt file watcher error", "error", watchErr)
			}
		}
	}
}

// reloadPromptFile re-reads a changed prompt file into the store. A
// failed reload keeps the previous content.
func reloadPromptFile(ref promptFileRef, logger *errors.Logger) {
	content, err := loadPromptFromFile(ref.Path, ref.Type, ref.Operation)
	if err != nil {
		if logger != nil {
			logger.LogError(err, "Failed to reload prompt file, keeping previous content",
				"file", ref.Path,
				"operation", ref.Operation,
				"prompt_type", ref.Type)
		}
		return
	}

	setLoadedPrompt(ref.Type, ref.Operation, content)
	if logger != nil {
		logger.Info("Prompt file reloaded",
			"file", ref.Path,
			"operation", ref.Operation,
			"prompt_type", ref.Type,
			"characters", len(content))
	}
}
