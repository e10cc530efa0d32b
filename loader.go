package arbor

import "context"

// AssetLoader resolves a model identifier to a renderable subtree. Load may
// be called from any goroutine and must return a subtree the caller owns.
type AssetLoader interface {
	Load(ctx context.Context, modelID string) (*Node, error)
}

// AssetLoaderFunc adapts a function to AssetLoader.
type AssetLoaderFunc func(ctx context.Context, modelID string) (*Node, error)

// Load calls f.
func (f AssetLoaderFunc) Load(ctx context.Context, modelID string) (*Node, error) {
	return f(ctx, modelID)
}
