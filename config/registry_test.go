package config

import (
	"context"
	"testing"

	"github.com/xemaha/watchkit/core"
	"github.com/xemaha/watchkit/pipeline"
)

type stubNode struct{}

func (n *stubNode) Name() string        { return "stub" }
func (n *stubNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

func TestRegisterAndBuild(t *testing.T) {
	Register("test.stub", func(_ map[string]any) (pipeline.Node, error) {
		return &stubNode{}, nil
	})

	found := false
	for _, typ := range SupportedTypes() {
		if typ == "test.stub" {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered type missing from SupportedTypes: %v", SupportedTypes())
	}

	node, err := DefaultFactory().Build("test.stub", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if node.Name() != "stub" {
		t.Errorf("node name = %q", node.Name())
	}
}

func TestRegister_IgnoresInvalid(t *testing.T) {
	before := len(SupportedTypes())
	Register("", func(_ map[string]any) (pipeline.Node, error) { return &stubNode{}, nil })
	Register("test.nil-builder", nil)
	if got := len(SupportedTypes()); got != before {
		t.Errorf("invalid registrations must be ignored: %d -> %d", before, got)
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	Register("test.valid", func(_ map[string]any) (pipeline.Node, error) {
		return &stubNode{}, nil
	})

	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "test.valid"}}
	if err := ValidatePipelineConfig(cfg); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "test.unknown"})
	if err := ValidatePipelineConfig(cfg); err == nil {
		t.Errorf("unknown type must be rejected")
	}

	if err := ValidatePipelineConfig(nil); err != nil {
		t.Errorf("nil config must validate: %v", err)
	}
}
