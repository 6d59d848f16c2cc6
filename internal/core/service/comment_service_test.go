package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

func (f *fixture) comments() *CommentService {
	return NewCommentService(memComments{f.store}, f.refs, f.val, zerolog.Nop())
}

func TestCommentService_CreateGetDelete(t *testing.T) {
	f := newFixture()
	f.store.seedUser("plainuser1", domain.RoleUser)
	rest := f.store.seedRestaurant("ownerone1", true)
	blog := f.store.seedBlog(rest.ID, "bloggerone")
	svc := f.comments()
	ctx := context.Background()

	created, err := svc.Create(ctx, blog.ID, ports.CommentInput{Content: " Agreed! ", Username: "PlainUser1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Content != "Agreed!" || created.Username != "plainuser1" || created.Blog != blog.ID {
		t.Fatalf("unexpected comment: %+v", created)
	}

	got, err := svc.Get(ctx, blog.ID, created.ID)
	if err != nil || got.ID != created.ID {
		t.Fatalf("Get: got %v %v", got, err)
	}

	if err := svc.Delete(ctx, blog.ID, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	err = svc.Delete(ctx, blog.ID, created.ID)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Msg != `ID "`+created.ID+`" is not associated to any comment` {
		t.Fatalf("second delete: expected not found, got %v", err)
	}

	if _, err := svc.List(ctx, blog.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("List of an empty blog: expected not found, got %v", err)
	}
}

func TestCommentService_ScopedToBlog(t *testing.T) {
	f := newFixture()
	f.store.seedUser("plainuser1", domain.RoleUser)
	rest := f.store.seedRestaurant("ownerone1", true)
	first := f.store.seedBlog(rest.ID, "bloggerone")
	second := f.store.seedBlog(rest.ID, "bloggerone")
	svc := f.comments()
	ctx := context.Background()

	created, err := svc.Create(ctx, first.ID, ports.CommentInput{Content: "hi", Username: "plainuser1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Get(ctx, second.ID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("comment must not resolve under another blog, got %v", err)
	}
	if err := svc.Delete(ctx, second.ID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("comment must not be deletable under another blog, got %v", err)
	}
	if _, ok := f.store.comments[created.ID]; !ok {
		t.Fatalf("comment was removed through the wrong blog")
	}
}

func TestCommentService_Create_Failures(t *testing.T) {
	f := newFixture()
	rest := f.store.seedRestaurant("ownerone1", true)
	blog := f.store.seedBlog(rest.ID, "bloggerone")
	svc := f.comments()
	ctx := context.Background()

	_, err := svc.Create(ctx, blog.ID, ports.CommentInput{Content: "hi", Username: "strangerx"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Msg != `Username "@strangerx" is not associated to any user account` {
		t.Fatalf("unknown author: got %v", err)
	}

	f.store.seedUser("plainuser1", domain.RoleUser)
	if _, err := svc.Create(ctx, newID(), ports.CommentInput{Content: "hi", Username: "plainuser1"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing blog: expected not found, got %v", err)
	}

	f.store.resetCalls()
	if _, err := svc.Create(ctx, "bad", ports.CommentInput{Content: "hi", Username: "plainuser1"}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("malformed blog id: expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.Get(ctx, blog.ID, "bad"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("malformed comment id: expected ErrInvalidID, got %v", err)
	}
	if n := f.store.callCount(); n != 0 {
		t.Fatalf("expected no store calls for malformed ids, got %d", n)
	}
}
