package schema

// Entry is a single child element of a directory, as produced by a [Cursor].
// It is transient and not meant to be retained beyond one iteration step.
type Entry struct {
	Name  string
	IsDir bool
}

// Cursor is an open enumeration over the immediate children of a directory.
// [Cursor.Next] returns [io.EOF] as the end marker once all children have been
// returned, any other error is an enumeration failure. A [Cursor] must always
// be released with [Cursor.Close].
type Cursor interface {
	Next() (Entry, error)
	Close() error
}

// DirectoryLister describes methods a directory enumerating capability needs
// to have.
type DirectoryLister interface {
	Open(path string) (Cursor, error)
}
