package walker

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/desertwitch/makethumbs/internal/schema"
	"github.com/stretchr/testify/mock"
)

// mockThumbnailService is a mock type for the [schema.ThumbnailService] type.
type mockThumbnailService struct {
	mock.Mock
}

func newMockThumbnailService(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockThumbnailService {
	m := &mockThumbnailService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockThumbnailService) GenerateThumbnail(ctx context.Context, item schema.Item, size int) (schema.Result, error) {
	ret := m.Called(ctx, item, size)

	return ret.Get(0).(schema.Result), ret.Error(1) //nolint:forcetypeassert
}

// mockPathResolver is a mock type for the [schema.PathResolver] type.
type mockPathResolver struct {
	mock.Mock
}

func newMockPathResolver(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockPathResolver {
	m := &mockPathResolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

//nolint:ireturn
func (m *mockPathResolver) Resolve(path string) (schema.Item, error) {
	ret := m.Called(path)

	var item schema.Item
	if v := ret.Get(0); v != nil {
		item = v.(schema.Item) //nolint:forcetypeassert
	}

	return item, ret.Error(1)
}

// fakeItem is a [schema.Item] counting its releases.
type fakeItem struct {
	mu       sync.Mutex
	path     string
	released int
}

func (i *fakeItem) Path() string               { return i.path }
func (i *fakeItem) URI() string                { return "file://" + i.path }
func (i *fakeItem) Size() int64                { return 10 }
func (i *fakeItem) ModTime() time.Time         { return time.Unix(0, 0) }
func (i *fakeItem) IsRegular() bool            { return true }
func (i *fakeItem) Reader() (io.Reader, error) { return nil, io.EOF }

func (i *fakeItem) Release() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.released++

	return nil
}

func (i *fakeItem) Released() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.released
}

// fakeTree is an in-memory [schema.DirectoryLister]. Directories are keyed by
// their full path and hold their children in enumeration order.
type fakeTree struct {
	mu       sync.Mutex
	dirs     map[string][]schema.Entry
	openErrs map[string]error
	nextErrs map[string]error
	opened   []string
	open     int
}

func newFakeTree() *fakeTree {
	return &fakeTree{
		dirs:     make(map[string][]schema.Entry),
		openErrs: make(map[string]error),
		nextErrs: make(map[string]error),
	}
}

//nolint:ireturn
func (f *fakeTree) Open(path string) (schema.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.openErrs[path]; ok {
		return nil, err
	}

	entries, ok := f.dirs[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}

	f.opened = append(f.opened, path)
	f.open++

	return &fakeCursor{tree: f, entries: entries, finalErr: f.nextErrs[path]}, nil
}

func (f *fakeTree) OpenCursors() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.open
}

func (f *fakeTree) Opened() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	opened := append([]string{}, f.opened...)
	sort.Strings(opened)

	return opened
}

type fakeCursor struct {
	tree     *fakeTree
	entries  []schema.Entry
	finalErr error
	closed   bool
}

func (c *fakeCursor) Next() (schema.Entry, error) {
	if len(c.entries) == 0 {
		if c.finalErr != nil {
			return schema.Entry{}, c.finalErr
		}

		return schema.Entry{}, io.EOF
	}

	entry := c.entries[0]
	c.entries = c.entries[1:]

	return entry, nil
}

func (c *fakeCursor) Close() error {
	if !c.closed {
		c.closed = true

		c.tree.mu.Lock()
		c.tree.open--
		c.tree.mu.Unlock()
	}

	return nil
}
