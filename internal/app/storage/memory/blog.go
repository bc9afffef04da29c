package memory

import (
	"context"
	"time"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/listquery"
)

func (s *Store) CreatePost(_ context.Context, p blog.Post) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextIDLocked()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = blog.StatusDraft
	}
	if p.Status == blog.StatusPublished && p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *Store) UpdatePost(_ context.Context, p blog.Post) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.posts[p.ID]
	if !ok {
		return blog.Post{}, storage.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if p.Status == blog.StatusPublished && p.PublishedAt.IsZero() {
		p.PublishedAt = p.UpdatedAt
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *Store) GetPost(_ context.Context, id string) (blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return blog.Post{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) ListPosts(_ context.Context, p listquery.Params) ([]blog.Post, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]blog.Post, 0, len(s.posts))
	for _, post := range s.posts {
		if !matchPost(post, p.Filters) {
			continue
		}
		matched = append(matched, post)
	}
	applySort(matched, p, func(a, b blog.Post, field string) (bool, bool) {
		switch field {
		case "title":
			return a.Title < b.Title, true
		case "published_at":
			return a.PublishedAt.Before(b.PublishedAt), true
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt), true
		}
		return false, false
	}, func(a, b blog.Post) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}

func matchPost(post blog.Post, f listquery.Filters) bool {
	if v, ok := stringFilter(f, "status"); ok && post.Status != v {
		return false
	}
	if v, ok := stringFilter(f, "q"); ok && !containsFold(post.Title, v) {
		return false
	}
	if v, ok := stringFilter(f, "tag_id"); ok {
		found := false
		for _, id := range post.TagIDs {
			if id == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Store) CreateTag(_ context.Context, t blog.Tag) (blog.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextIDLocked()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tags[t.ID] = t
	return t, nil
}

func (s *Store) DeleteTag(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tags, id)
	return nil
}

func (s *Store) ListTags(_ context.Context, p listquery.Params) ([]blog.Tag, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]blog.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		if v, ok := stringFilter(p.Filters, "q"); ok && !containsFold(t.Name, v) {
			continue
		}
		matched = append(matched, t)
	}
	applySort(matched, p, func(a, b blog.Tag, field string) (bool, bool) {
		if field == "name" {
			return a.Name < b.Name, true
		}
		return false, false
	}, func(a, b blog.Tag) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}
