package thumbcache

const (
	// MinSize is the smallest supported thumbnail size.
	MinSize = 1

	// MaxSize is the largest supported thumbnail size.
	MaxSize = 1024
)

// bucket is a size class of the cache, each stored in its own directory.
type bucket struct {
	dir  string
	size int
}

//nolint:gochecknoglobals,mnd
var buckets = []bucket{
	{dir: "normal", size: 128},
	{dir: "large", size: 256},
	{dir: "x-large", size: 512},
	{dir: "xx-large", size: 1024},
}

// bucketFor returns the smallest [bucket] that can hold a thumbnail of the
// given size. The size must be within [MinSize] and [MaxSize].
func bucketFor(size int) bucket {
	for _, b := range buckets {
		if size <= b.size {
			return b
		}
	}

	return buckets[len(buckets)-1]
}
