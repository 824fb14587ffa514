package scrape

// SeenSet is the job-scoped memory of URLs already converted into records.
// It is shared across all sites of one job to prevent cross-site duplicates
// and redundant fetches, and discarded when the job ends. Sites run strictly
// sequentially, so no locking is needed.
type SeenSet struct {
	urls map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{urls: make(map[string]struct{})}
}

func (s *SeenSet) Seen(url string) bool {
	_, ok := s.urls[url]
	return ok
}

func (s *SeenSet) Add(url string) {
	s.urls[url] = struct{}{}
}

func (s *SeenSet) Len() int {
	return len(s.urls)
}
