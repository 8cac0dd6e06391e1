package cmusearch

import "sync"

// Engine is the host-facing surface from §6: initialize from documents
// or from a cached index, search, and read back a cacheable encoding.
// It is safe for concurrent use — a search running against an
// installed Store is unaffected by a concurrent rebuild, since the two
// never share mutable state (§5).
//
// The zero value is a valid, not-yet-initialized Engine.
type Engine struct {
	mu    sync.RWMutex
	store *Store
}

// NewEngine returns an Engine with no store installed. Every operation
// but IsEngineReady returns ErrNotInitialized until InitEngine or
// InitEngineFromCache succeeds.
func NewEngine() *Engine {
	return &Engine{}
}

// InitEngine builds a new Store from sources and config and installs
// it (§6 init_engine). Build happens into a local value first; only a
// successful build replaces the engine's store, so a failed call never
// leaves the engine partially reinitialized (§7 "no internal state is
// partially mutated on failure").
func (e *Engine) InitEngine(sources Sources, config Config) error {
	store, err := Build(sources, config)
	if err != nil {
		return err
	}
	e.install(store)
	return nil
}

// InitEngineFromCache decodes a previously cached index and installs
// it (§6 init_engine_from_cache), reattaching sources and config
// without recomputing n-grams. Like InitEngine, the decode happens
// before anything is installed.
func (e *Engine) InitEngineFromCache(cached string, sources Sources, config Config) error {
	store, err := Decode(cached, sources, config)
	if err != nil {
		return err
	}
	e.install(store)
	return nil
}

// install atomically swaps in a freshly built or decoded store.
func (e *Engine) install(store *Store) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = store
}

// SearchDocs tokenizes query into n-grams and returns up to n ranked
// results (§6 search_docs, §4.4). Returns ErrNotInitialized if the
// engine has not been built or restored yet.
func (e *Engine) SearchDocs(query string, n int) ([]Result, error) {
	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	if store == nil {
		return nil, ErrNotInitialized
	}
	return search(store, query, n), nil
}

// GetCachableIndex returns the opaque, self-contained encoding of the
// installed index (§6 get_cachable_index), suitable for a later
// InitEngineFromCache call against the same sources and config.
func (e *Engine) GetCachableIndex() (string, error) {
	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	if store == nil {
		return "", ErrNotInitialized
	}
	return Encode(store)
}

// GetDocCount returns the total number of documents indexed, summed
// across all sources (§6 get_doc_count, §3).
func (e *Engine) GetDocCount() (int, error) {
	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.docCountFor(""), nil
}

// IsEngineReady reports whether the engine has an installed store
// (§6 is_engine_ready). Always callable, never errors.
func (e *Engine) IsEngineReady() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store != nil
}
