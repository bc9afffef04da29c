package httpapi

import (
	"net/http"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/listquery"
)

type postPayload struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url"`
	TagIDs   []string `json:"tag_ids"`
	Status   string   `json:"status"`
}

func (p postPayload) toDomain(id string) blog.Post {
	return blog.Post{
		ID:       id,
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		ImageURL: p.ImageURL,
		TagIDs:   p.TagIDs,
		Status:   p.Status,
	}
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	filters := listquery.Filters{}
	stringFilters(r, filters, "status", "tag_id", "q")
	binding := h.app.Posts.Posts()
	applyListQuery(r, binding.Controller(), filters)
	if err := binding.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, binding.Controller(), binding.Items())
}

func (h *handler) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Posts.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Posts.Create(r.Context(), payload.toDomain(""))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) updatePost(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Posts.Update(r.Context(), payload.toDomain(pathID(r)))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Posts.Delete(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *handler) listTags(w http.ResponseWriter, r *http.Request) {
	binding := h.app.Posts.Tags()
	applyListQuery(r, binding.Controller(), listquery.Filters{})
	if err := binding.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, binding.Controller(), binding.Items())
}

func (h *handler) createTag(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Posts.CreateTag(r.Context(), blog.Tag{Name: payload.Name, Slug: payload.Slug})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Posts.DeleteTag(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}
