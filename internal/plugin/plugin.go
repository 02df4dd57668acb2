package plugin

import (
	"context"

	"JarvisGolang/internal/entity"
	"JarvisGolang/pkg/conversation"
)

// Request carries everything a plugin needs to answer one command.
type Request struct {
	Intent   string
	Text     string
	Language string
	Entities []entity.Entity
	Context  conversation.Snapshot
}

// Result is what a plugin hands back. ContextUpdates are written into
// the owner's conversation scratch data after a successful turn.
type Result struct {
	Response       string
	ContextUpdates map[string]string
}

type Plugin interface {
	Name() string
	Description() string
	// CanHandle reports whether the plugin claims the raw utterance.
	// It is only consulted for text the intent router could not place,
	// so most plugins answer with a keyword check or a flat false.
	CanHandle(text string, snap conversation.Snapshot) bool
	Handle(ctx context.Context, req Request) (Result, error)
}

// Registry holds the fixed set of plugins wired at startup. Order is
// registration order, which decides who wins when several plugins
// claim the same utterance and disambiguation cannot break the tie.
type Registry struct {
	plugins []Plugin
	byName  map[string]Plugin
}

func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{
		byName: make(map[string]Plugin, len(plugins)),
	}
	for _, p := range plugins {
		r.plugins = append(r.plugins, p)
		r.byName[p.Name()] = p
	}
	return r
}

func (r *Registry) All() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

func (r *Registry) ByName(name string) (Plugin, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Candidates returns every plugin that claims the utterance, in
// registration order.
func (r *Registry) Candidates(text string, snap conversation.Snapshot) []Plugin {
	var out []Plugin
	for _, p := range r.plugins {
		if p.CanHandle(text, snap) {
			out = append(out, p)
		}
	}
	return out
}
