// Package mock provides test double implementations of the ai interfaces.
//
// The mocks allow tests to run without a model server and enable controlled,
// deterministic behavior:
//
//   - MockEmbedder: returns deterministic vectors derived from the input hash
//   - MockCaptioner: returns a caption derived from the file name
//   - MockProvider: aggregates both
//
// Custom behavior is injected via function fields, and call counts are
// exposed for assertions:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("embedding backend down")
//	}
//	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockCaptioner())
package mock
