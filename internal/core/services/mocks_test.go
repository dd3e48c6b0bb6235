package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// fakeLLM scripts Generate responses and records every prompt it sees.
type fakeLLM struct {
	mu      sync.Mutex
	prompts []string

	// respond, when set, picks the reply per prompt. Otherwise reply/err
	// are returned for every call.
	respond func(prompt string) (string, error)
	reply   string
	err     error
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(prompt)
	}
	return f.reply, f.err
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeLLM) ModelName() string               { return "fake-llm" }
func (f *fakeLLM) Ping(_ context.Context) error    { return nil }
func (f *fakeLLM) Close() error                    { return nil }

// classifierReply builds a scripted respond func that answers the intent
// router with the given JSON and everything else with reply.
func classifierReply(classification, reply string) func(string) (string, error) {
	return func(prompt string) (string, error) {
		if strings.Contains(prompt, "You are a router") {
			return classification, nil
		}
		return reply, nil
	}
}

// fakeExtractor returns scripted pages.
type fakeExtractor struct {
	pages []domain.PageText
	err   error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte) ([]domain.PageText, error) {
	return f.pages, f.err
}

// fakeIndex records added chunks and serves scripted search hits.
type fakeIndex struct {
	mu        sync.Mutex
	chunks    []domain.Chunk
	hits      []domain.ScoredChunk
	searchErr error
	saved     []string
	addErr    error
}

func (f *fakeIndex) AddChunks(_ context.Context, chunks []domain.Chunk) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	f.chunks = append(f.chunks, chunks...)
	f.mu.Unlock()
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, k int, filter *driven.SearchFilter) ([]domain.ScoredChunk, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	hits := f.hits
	if filter != nil {
		var filtered []domain.ScoredChunk
		for _, h := range hits {
			if h.Chunk.Metadata.DocumentID == filter.DocumentID {
				filtered = append(filtered, h)
			}
		}
		hits = filtered
	}
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (f *fakeIndex) Save(_ context.Context, path string) error {
	f.mu.Lock()
	f.saved = append(f.saved, path)
	f.mu.Unlock()
	return nil
}

func (f *fakeIndex) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chunks)
}

// fakeProvider hands out a single fakeIndex and tracks create/load calls.
type fakeProvider struct {
	mu        sync.Mutex
	index     *fakeIndex
	exists    bool
	createErr error
	loadErr   error
	creates   int
	loads     int
}

func (f *fakeProvider) Create(_ context.Context, chunks []domain.Chunk) (driven.Index, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates++
	if f.index == nil {
		f.index = &fakeIndex{}
	}
	f.index.chunks = append(f.index.chunks, chunks...)
	return f.index, nil
}

func (f *fakeProvider) Load(_ context.Context, _ string) (driven.Index, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.loads++
	if f.index == nil {
		return nil, errors.New("no index")
	}
	return f.index, nil
}

func (f *fakeProvider) Exists(_ string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists
}

// fakePrompts serves a fixed template map; unknown names error.
type fakePrompts struct {
	templates map[string]string
}

func (f *fakePrompts) Load(name string) (string, error) {
	if t, ok := f.templates[name]; ok {
		return t, nil
	}
	return "", errors.New("unknown prompt " + name)
}

func (f *fakePrompts) Reload() {}
