// Package posts is the admin service for editorial content.
package posts

import (
	"context"
	"strings"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/pkg/logger"
)

// Service wraps the blog store behind list-state management for posts and
// tags.
type Service struct {
	store storage.BlogStore
	log   *logger.Logger

	posts *listquery.Binding[blog.Post]
	tags  *listquery.Binding[blog.Tag]
}

// NewService creates the blog service.
func NewService(store storage.BlogStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("posts")
	}
	s := &Service{store: store, log: log}

	postCtrl := listquery.NewController(listquery.DefaultPageSize)
	s.posts = listquery.NewBinding(postCtrl, func(ctx context.Context, p listquery.Params) (listquery.Page[blog.Post], error) {
		items, count, err := store.ListPosts(ctx, p)
		if err != nil {
			return listquery.Page[blog.Post]{}, err
		}
		return listquery.Page[blog.Post]{Items: items, Count: count}, nil
	}, log)

	tagCtrl := listquery.NewController(listquery.DefaultPageSize)
	s.tags = listquery.NewBinding(tagCtrl, func(ctx context.Context, p listquery.Params) (listquery.Page[blog.Tag], error) {
		items, count, err := store.ListTags(ctx, p)
		if err != nil {
			return listquery.Page[blog.Tag]{}, err
		}
		return listquery.Page[blog.Tag]{Items: items, Count: count}, nil
	}, log)

	return s
}

// Posts returns the post list binding.
func (s *Service) Posts() *listquery.Binding[blog.Post] { return s.posts }

// Tags returns the tag list binding.
func (s *Service) Tags() *listquery.Binding[blog.Tag] { return s.tags }

// Get loads a single post.
func (s *Service) Get(ctx context.Context, id string) (blog.Post, error) {
	if id == "" {
		return blog.Post{}, validation.Errorf("post id is required")
	}
	return s.store.GetPost(ctx, id)
}

// Create validates and stores a new post.
func (s *Service) Create(ctx context.Context, p blog.Post) (blog.Post, error) {
	if err := validate(p); err != nil {
		return blog.Post{}, err
	}
	created, err := s.store.CreatePost(ctx, p)
	if err != nil {
		return blog.Post{}, err
	}
	s.log.WithField("post_id", created.ID).Info("post created")
	if err := s.posts.ItemCreated(ctx); err != nil {
		s.log.WithError(err).Warn("post list refresh after create failed")
	}
	return created, nil
}

// Update stores changes to a post. A status change while the list is
// filtered by status moves the post in or out of the visible set, so the
// page is re-fetched in that case; otherwise it is patched in place.
func (s *Service) Update(ctx context.Context, p blog.Post) (blog.Post, error) {
	if p.ID == "" {
		return blog.Post{}, validation.Errorf("post id is required")
	}
	if err := validate(p); err != nil {
		return blog.Post{}, err
	}
	updated, err := s.store.UpdatePost(ctx, p)
	if err != nil {
		return blog.Post{}, err
	}
	s.log.WithField("post_id", updated.ID).Info("post updated")

	filters := s.posts.Controller().ActiveFilters()
	if !matchesFilters(updated, filters) {
		if err := s.posts.ItemUpdated(ctx, true, nil, updated); err != nil {
			s.log.WithError(err).Warn("post list refresh after update failed")
		}
		return updated, nil
	}
	_ = s.posts.ItemUpdated(ctx, false, func(x blog.Post) bool { return x.ID == updated.ID }, updated)
	return updated, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("post id is required")
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.log.WithField("post_id", id).Info("post deleted")
	if err := s.posts.ItemDeleted(ctx); err != nil {
		s.log.WithError(err).Warn("post list refresh after delete failed")
	}
	return nil
}

// CreateTag stores a new tag.
func (s *Service) CreateTag(ctx context.Context, t blog.Tag) (blog.Tag, error) {
	if t.Name == "" {
		return blog.Tag{}, validation.Errorf("tag name is required")
	}
	created, err := s.store.CreateTag(ctx, t)
	if err != nil {
		return blog.Tag{}, err
	}
	if err := s.tags.ItemCreated(ctx); err != nil {
		s.log.WithError(err).Warn("tag list refresh after create failed")
	}
	return created, nil
}

// DeleteTag removes a tag.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("tag id is required")
	}
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}
	if err := s.tags.ItemDeleted(ctx); err != nil {
		s.log.WithError(err).Warn("tag list refresh after delete failed")
	}
	return nil
}

func validate(p blog.Post) error {
	if p.Title == "" {
		return validation.Errorf("post title is required")
	}
	if p.Status != "" && p.Status != blog.StatusDraft && p.Status != blog.StatusPublished {
		return validation.Errorf("unknown post status %q", p.Status)
	}
	return nil
}

func matchesFilters(p blog.Post, f listquery.Filters) bool {
	if v, ok := f["status"].(string); ok && v != "" && p.Status != v {
		return false
	}
	if v, ok := f["q"].(string); ok && v != "" &&
		!strings.Contains(strings.ToLower(p.Title), strings.ToLower(v)) {
		return false
	}
	if v, ok := f["tag_id"].(string); ok && v != "" {
		found := false
		for _, id := range p.TagIDs {
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
