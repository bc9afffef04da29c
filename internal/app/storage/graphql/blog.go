package graphql

import (
	"context"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/listquery"
)

func postID(d postDTO) string { return d.ID }
func tagID(d tagDTO) string   { return d.ID }

func (s *Store) ListPosts(ctx context.Context, p listquery.Params) ([]blog.Post, int, error) {
	items, count, err := fetchPage[postDTO](ctx, s, kindPost, "Posts", queryPosts, "posts", p, postID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]blog.Post, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (blog.Post, error) {
	d, err := fetchOne[postDTO](ctx, s, kindPost, "Post", queryPost, "post", id)
	if err != nil {
		return blog.Post{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) CreatePost(ctx context.Context, p blog.Post) (blog.Post, error) {
	vars := map[string]interface{}{"input": postInput(p)}
	d, err := mutateCreate[postDTO](ctx, s, kindPost, "CreatePost", mutationCreatePost, "createPost", vars, postID)
	if err != nil {
		return blog.Post{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdatePost(ctx context.Context, p blog.Post) (blog.Post, error) {
	vars := map[string]interface{}{"id": p.ID, "input": postInput(p)}
	d, err := mutateUpdate[postDTO](ctx, s, kindPost, "UpdatePost", mutationUpdatePost, "updatePost", vars, postID)
	if err != nil {
		return blog.Post{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindPost, "DeletePost", mutationDeletePost, "deletePost", id)
}

func (s *Store) ListTags(ctx context.Context, p listquery.Params) ([]blog.Tag, int, error) {
	items, count, err := fetchPage[tagDTO](ctx, s, kindTag, "Tags", queryTags, "tags", p, tagID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]blog.Tag, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) CreateTag(ctx context.Context, t blog.Tag) (blog.Tag, error) {
	vars := map[string]interface{}{"input": map[string]interface{}{"name": t.Name, "slug": t.Slug}}
	d, err := mutateCreate[tagDTO](ctx, s, kindTag, "CreateTag", mutationCreateTag, "createTag", vars, tagID)
	if err != nil {
		return blog.Tag{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	return mutateDelete(ctx, s, kindTag, "DeleteTag", mutationDeleteTag, "deleteTag", id)
}
