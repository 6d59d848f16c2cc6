package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

func (f *fixture) blogs() *BlogService {
	return NewBlogService(memBlogs{f.store}, memRestaurants{f.store}, f.images, f.purger, f.refs, f.val, 1000, zerolog.Nop())
}

func TestBlogService_Create(t *testing.T) {
	f := newFixture()
	f.store.seedUser("bloggerone", domain.RoleBlogger)
	rest := f.store.seedRestaurant("ownerone1", true)
	svc := f.blogs()

	blog, err := svc.Create(context.Background(), ports.BlogInput{
		Title:      "best ramen in town",
		Content:    "  Rich broth.  ",
		Restaurant: rest.ID,
		Blogger:    "BloggerOne",
	}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if blog.Title != "Best Ramen In Town" || blog.Content != "Rich broth." {
		t.Fatalf("unexpected normalisation: %+v", blog)
	}
	if blog.Blogger != "bloggerone" || blog.CoverImage != "" {
		t.Fatalf("unexpected blog: %+v", blog)
	}
	if blog.Timestamp.IsZero() {
		t.Fatalf("expected server-assigned timestamp")
	}
}

func TestBlogService_Create_WithCover(t *testing.T) {
	f := newFixture()
	f.store.seedUser("bloggerone", domain.RoleBlogger)
	rest := f.store.seedRestaurant("ownerone1", true)

	blog, err := f.blogs().Create(context.Background(), ports.BlogInput{
		Title: "cover", Content: "c", Restaurant: rest.ID, Blogger: "bloggerone",
	}, pngUpload())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, ok := f.images.saved[blog.CoverImage]; !ok {
		t.Fatalf("expected cover image to be stored")
	}
}

func TestBlogService_Create_References(t *testing.T) {
	f := newFixture()
	f.store.seedUser("bloggerone", domain.RoleBlogger)
	f.store.seedUser("plainuser1", domain.RoleUser)
	active := f.store.seedRestaurant("ownerone1", true)
	inactive := f.store.seedRestaurant("ownerone1", false)
	svc := f.blogs()

	tests := []struct {
		name string
		in   ports.BlogInput
		msg  string
	}{
		{
			name: "inactive restaurant",
			in:   ports.BlogInput{Title: "t", Content: "c", Restaurant: inactive.ID, Blogger: "bloggerone"},
			msg:  `ID "@` + inactive.ID + `" is not associated to any restaurant`,
		},
		{
			name: "author is not a blogger",
			in:   ports.BlogInput{Title: "t", Content: "c", Restaurant: active.ID, Blogger: "plainuser1"},
			msg:  `Username "@plainuser1" is not associated to any blogger account`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in, nil)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Errors[0].Msg != tt.msg {
				t.Fatalf("expected %q, got %v", tt.msg, err)
			}
		})
	}

	_, err := svc.Create(context.Background(), ports.BlogInput{
		Title: "t", Content: "c", Restaurant: "xyz", Blogger: "bloggerone",
	}, nil)
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("malformed restaurant id: expected ErrInvalidID, got %v", err)
	}
}

func TestBlogService_List_HidesInactiveRestaurants(t *testing.T) {
	f := newFixture()
	active := f.store.seedRestaurant("ownerone1", true)
	inactive := f.store.seedRestaurant("ownerone1", false)
	visible := f.store.seedBlog(active.ID, "bloggerone")
	hidden := f.store.seedBlog(inactive.ID, "bloggerone")
	svc := f.blogs()
	ctx := context.Background()

	blogs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(blogs) != 1 || blogs[0].ID != visible.ID {
		t.Fatalf("expected only the blog of the active restaurant, got %+v", blogs)
	}

	// GetByID intentionally skips the active check that List applies.
	got, err := svc.GetByID(ctx, hidden.ID)
	if err != nil || got.ID != hidden.ID {
		t.Fatalf("GetByID of a blog under an inactive restaurant: got %v %v", got, err)
	}

	if _, err := svc.GetByRestaurant(ctx, inactive.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByRestaurant of inactive restaurant: expected not found, got %v", err)
	}
}

func TestBlogService_List_Empty(t *testing.T) {
	f := newFixture()
	inactive := f.store.seedRestaurant("ownerone1", false)
	f.store.seedBlog(inactive.ID, "bloggerone")

	_, err := f.blogs().List(context.Background())
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Msg != "There are no blogs yet" {
		t.Fatalf("expected empty-list not found, got %v", err)
	}
}

func TestBlogService_Delete_EnqueuesPurge(t *testing.T) {
	f := newFixture()
	rest := f.store.seedRestaurant("ownerone1", true)
	blog := f.store.seedBlog(rest.ID, "bloggerone")
	svc := f.blogs()

	if err := svc.Delete(context.Background(), blog.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := f.store.blogs[blog.ID]; ok {
		t.Fatalf("blog still stored")
	}
	if len(f.purger.ids) != 1 || f.purger.ids[0] != blog.ID {
		t.Fatalf("expected purge of %s, got %v", blog.ID, f.purger.ids)
	}

	err := svc.Delete(context.Background(), blog.ID)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Msg != `ID "`+blog.ID+`" is not associated to any blog` {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
	if len(f.purger.ids) != 1 {
		t.Fatalf("failed delete must not enqueue a purge")
	}
}

func TestBlogService_MalformedIDNeverReachesStore(t *testing.T) {
	f := newFixture()
	svc := f.blogs()

	for _, call := range []func() error{
		func() error { _, err := svc.GetByID(context.Background(), "123"); return err },
		func() error { _, err := svc.GetByRestaurant(context.Background(), "123"); return err },
		func() error { return svc.Delete(context.Background(), "123") },
	} {
		if err := call(); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	}
	if n := f.store.callCount(); n != 0 {
		t.Fatalf("expected no store calls, got %d", n)
	}
}
