package schema

import "context"

// Result is the outcome of a successful thumbnail request.
type Result int

const (
	// ResultGenerated means a new thumbnail was extracted and stored.
	ResultGenerated Result = iota

	// ResultCached means an up-to-date thumbnail already existed.
	ResultCached
)

func (r Result) String() string {
	switch r {
	case ResultGenerated:
		return "generated"
	case ResultCached:
		return "cached"
	default:
		return "unknown"
	}
}

// ThumbnailService describes methods a thumbnail cache needs to have.
type ThumbnailService interface {
	GenerateThumbnail(ctx context.Context, item Item, size int) (Result, error)
}
