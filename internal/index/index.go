package index

// PostIndex defines the interface for post indexing operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type PostIndex interface {
	UpsertPost(p PostRow, body string) error
	DeletePost(path string) error
	GetPost(path string) (*PostRow, error)
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	ListPosts(opts ListOptions) ([]PostRow, int, error)
	ListTags() ([]TagCount, error)
	Search(query string, limit int, includeDrafts bool) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies PostIndex at compile time.
var _ PostIndex = (*DB)(nil)
