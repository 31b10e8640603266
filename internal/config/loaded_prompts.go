package config

import (
	"sync"
)

// promptStore holds prompt content loaded from files, keyed by operation
// id. Guarded by a mutex because the file watcher replaces entries at
// runtime while providers read them per request.
var promptStore = struct {
	mu     sync.RWMutex
	system map[string]string
	user   map[string]string
}{
	system: make(map[string]string),
	user:   make(map[string]string),
}

// LoadedPrompts is a snapshot of prompt content loaded from files.
type LoadedPrompts struct {
	System map[string]string
	User   map[string]string
}

// GetLoadedPrompts returns a copy of the loaded prompt content in a
// thread-safe way.
func GetLoadedPrompts() LoadedPrompts {
	promptStore.mu.RLock()
	defer promptStore.mu.RUnlock()

	snapshot := LoadedPrompts{
		System: make(map[string]string, len(promptStore.system)),
		User:   make(map[string]string, len(promptStore.user)),
	}
	for op, content := range promptStore.system {
		snapshot.System[op] = content
	}
	for op, content := range promptStore.user {
		snapshot.User[op] = content
	}
	return snapshot
}

// setLoadedPrompt stores file-loaded prompt content for an operation.
func setLoadedPrompt(promptType, operation, content string) {
	promptStore.mu.Lock()
	defer promptStore.mu.Unlock()

	switch promptType {
	case "system":
		promptStore.system[operation] = content
	case "user":
		promptStore.user[operation] = content
	}
}

// resetLoadedPrompts clears the store. Used when reloading configuration.
func resetLoadedPrompts() {
	promptStore.mu.Lock()
	defer promptStore.mu.Unlock()

	promptStore.system = make(map[string]string)
	promptStore.user = make(map[string]string)
}
