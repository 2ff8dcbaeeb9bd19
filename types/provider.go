package types

import (
	"context"
	"fmt"
)

// DataProvider abstracts list sources for filters
type DataProvider interface {
	Name() string
	FetchList(ctx context.Context, key string) ([]string, error)
	Initialize(config map[string]interface{}) error
	Close() error
}

// StaticListProvider serves lists straight from the config file
type StaticListProvider struct {
	lists map[string][]string
}

func NewStaticListProvider() *StaticListProvider {
	return &StaticListProvider{lists: make(map[string][]string)}
}

func (p *StaticListProvider) Name() string {
	return "static"
}

// Initialize expects a "lists" map of key to string slice
func (p *StaticListProvider) Initialize(config map[string]interface{}) error {
	raw, ok := config["lists"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("static provider requires 'lists' in config")
	}
	for key, v := range raw {
		items, err := toStringSlice(v)
		if err != nil {
			return fmt.Errorf("list %q: %w", key, err)
		}
		p.lists[key] = items
	}
	return nil
}

func (p *StaticListProvider) FetchList(_ context.Context, key string) ([]string, error) {
	items, ok := p.lists[key]
	if !ok {
		return nil, fmt.Errorf("unknown list %q", key)
	}
	return items, nil
}

func (p *StaticListProvider) Close() error {
	return nil
}

func toStringSlice(v interface{}) ([]string, error) {
	switch vals := v.(type) {
	case []string:
		return vals, nil
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", v)
	}
}
