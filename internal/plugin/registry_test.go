package plugin

import (
	"context"
	"strings"
	"testing"

	"JarvisGolang/pkg/conversation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name    string
	keyword string
}

func (p *stubPlugin) Name() string        { return p.name }
func (p *stubPlugin) Description() string { return "stub " + p.name }
func (p *stubPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	return p.keyword != "" && strings.Contains(text, p.keyword)
}
func (p *stubPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	return Result{Response: p.name}, nil
}

func TestRegistryByName(t *testing.T) {
	a := &stubPlugin{name: "alpha"}
	b := &stubPlugin{name: "beta"}
	r := NewRegistry(a, b)

	got, ok := r.ByName("beta")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = r.ByName("missing")
	assert.False(t, ok)
}

func TestRegistryCandidatesKeepRegistrationOrder(t *testing.T) {
	a := &stubPlugin{name: "alpha", keyword: "play"}
	b := &stubPlugin{name: "beta", keyword: "play"}
	c := &stubPlugin{name: "gamma", keyword: "remind"}
	r := NewRegistry(a, b, c)

	var snap conversation.Snapshot
	candidates := r.Candidates("play some jazz", snap)
	require.Len(t, candidates, 2)
	assert.Equal(t, "alpha", candidates[0].Name())
	assert.Equal(t, "beta", candidates[1].Name())

	assert.Empty(t, r.Candidates("what time is it", snap))
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	a := &stubPlugin{name: "alpha"}
	r := NewRegistry(a)

	all := r.All()
	require.Len(t, all, 1)
	all[0] = &stubPlugin{name: "other"}

	again := r.All()
	assert.Equal(t, "alpha", again[0].Name())
}
