package typo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when a post id has no match in the collection.
var ErrNotFound = errors.New("post not found")

// InsertPos selects which end of the collection Insert adds to. API-driven
// creation appends; form-driven creation prepends so the newest post is
// listed first on the feed.
type InsertPos int

const (
	AtEnd InsertPos = iota
	AtStart
)

// PostUpdate carries a partial update. Nil fields are left unchanged.
type PostUpdate struct {
	Title     *string
	Content   *string
	ImagePath *string
}

// Store is the sole authority over the post collection and the
// customization singleton. It keeps both in memory and rewrites the
// backing JSON file synchronously after every successful mutation.
//
// Posts and customization are guarded by separate locks so a
// load-mutate-save sequence is atomic with respect to other callers.
type Store struct {
	postsPath  string
	customPath string

	postsMu sync.Mutex
	posts   []Post

	customMu sync.Mutex
	custom   Customization
}

// NewStore loads (or initializes) the store backed by the given JSON files,
// creating their directories as needed.
func NewStore(postsPath, customPath string) (*Store, error) {
	for _, p := range []string{postsPath, customPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, err
		}
	}
	posts, err := loadPosts(postsPath)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return &Store{
		postsPath:  postsPath,
		customPath: customPath,
		posts:      posts,
		custom:     loadCustomization(customPath),
	}, nil
}

// loadPosts reads the posts file. A missing file or one that is not valid
// JSON yields an empty collection. An element inside a well-formed array
// that lacks a required field fails with DecodeError; there is no
// per-element fallback.
func loadPosts(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, nil
	}
	return posts, nil
}

// savePosts rewrites the whole posts file as a pretty-printed JSON array.
func savePosts(path string, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// loadCustomization reads the customization file. Any failure, including
// malformed JSON, yields the default record.
func loadCustomization(path string) Customization {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultCustomization()
	}
	var c Customization
	if err := json.Unmarshal(data, &c); err != nil {
		return DefaultCustomization()
	}
	return c
}

func saveCustomization(path string, c Customization) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Posts returns a copy of the collection in insertion order.
func (s *Store) Posts() []Post {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Get returns the post with the given id, or ErrNotFound.
func (s *Store) Get(id string) (Post, error) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Insert adds p at the chosen end of the collection and persists.
func (s *Store) Insert(p Post, pos InsertPos) error {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	if pos == AtStart {
		s.posts = append([]Post{p}, s.posts...)
	} else {
		s.posts = append(s.posts, p)
	}
	return savePosts(s.postsPath, s.posts)
}

// Update applies the non-nil fields of upd to the post with the given id
// and persists. Returns the updated post, or ErrNotFound.
func (s *Store) Update(id string, upd PostUpdate) (Post, error) {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if upd.Title != nil {
			s.posts[i].Title = *upd.Title
		}
		if upd.Content != nil {
			s.posts[i].Content = *upd.Content
		}
		if upd.ImagePath != nil {
			s.posts[i].ImagePath = *upd.ImagePath
		}
		if err := savePosts(s.postsPath, s.posts); err != nil {
			return Post{}, err
		}
		return s.posts[i], nil
	}
	return Post{}, ErrNotFound
}

// Delete removes the post with the given id and persists.
func (s *Store) Delete(id string) error {
	s.postsMu.Lock()
	defer s.postsMu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		return savePosts(s.postsPath, s.posts)
	}
	return ErrNotFound
}

// Customization returns the current customization record.
func (s *Store) Customization() Customization {
	s.customMu.Lock()
	defer s.customMu.Unlock()
	return s.custom
}

// SetCustomization replaces the customization record and persists it.
func (s *Store) SetCustomization(c Customization) error {
	s.customMu.Lock()
	defer s.customMu.Unlock()
	s.custom = c
	return saveCustomization(s.customPath, c)
}
