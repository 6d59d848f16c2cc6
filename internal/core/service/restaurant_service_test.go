package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

func pngUpload() *ports.ImageUpload {
	return &ports.ImageUpload{Filename: "cover.PNG", Data: append([]byte(nil), pngBytes...)}
}

func (f *fixture) restaurants() *RestaurantService {
	return NewRestaurantService(memRestaurants{f.store}, f.images, f.refs, f.val, 1000, zerolog.Nop())
}

func restaurantInput(owner string) ports.RestaurantInput {
	return ports.RestaurantInput{
		Name:         "blue fin sushi",
		Description:  "Fresh fish",
		Location:     "Quezon City",
		Restaurateur: owner,
	}
}

func TestRestaurantService_Create(t *testing.T) {
	f := newFixture()
	f.store.seedUser("ownerone1", domain.RoleRestaurateur)
	svc := f.restaurants()

	inactive := false
	in := restaurantInput("OwnerOne1")
	in.IsActive = &inactive
	created, err := svc.Create(context.Background(), in, pngUpload())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("new restaurants must start active")
	}
	if created.Name != "Blue Fin Sushi" {
		t.Fatalf("expected capitalised name, got %q", created.Name)
	}
	if created.Restaurateur != "ownerone1" {
		t.Fatalf("unexpected owner %q", created.Restaurateur)
	}
	if _, ok := f.images.saved[created.CoverImage]; !ok {
		t.Fatalf("cover image %q was not stored", created.CoverImage)
	}
}

func TestRestaurantService_Create_OwnerMustBeRestaurateur(t *testing.T) {
	f := newFixture()
	f.store.seedUser("bloggerone", domain.RoleBlogger)
	svc := f.restaurants()

	_, err := svc.Create(context.Background(), restaurantInput("bloggerone"), pngUpload())

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Errors[0].Msg != `Username "@bloggerone" is not associated to any restaurateur account` {
		t.Fatalf("unexpected message %q", ve.Errors[0].Msg)
	}
	if len(f.images.saved) != 0 {
		t.Fatalf("no image should be stored when validation fails")
	}
}

func TestRestaurantService_Create_ImageRules(t *testing.T) {
	tests := []struct {
		name  string
		cover *ports.ImageUpload
		msg   string
	}{
		{"missing", nil, "No file Selected"},
		{"too large", &ports.ImageUpload{Filename: "big.png", Data: make([]byte, 1001)}, "File too large"},
		{"wrong type", &ports.ImageUpload{Filename: "menu.pdf", Data: []byte("%PDF-1.4 menu")}, "Error: Images Only!"},
		{"disguised", &ports.ImageUpload{Filename: "menu.png", Data: []byte("%PDF-1.4 menu")}, "Error: Images Only!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.seedUser("ownerone1", domain.RoleRestaurateur)

			_, err := f.restaurants().Create(context.Background(), restaurantInput("ownerone1"), tt.cover)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Errors[0].Msg != tt.msg {
				t.Fatalf("expected %q, got %v", tt.msg, err)
			}
			if len(f.store.restaurants) != 0 {
				t.Fatalf("restaurant must not be stored")
			}
		})
	}
}

func TestRestaurantService_Create_RemovesImageOnStoreFailure(t *testing.T) {
	f := newFixture()
	f.store.seedUser("ownerone1", domain.RoleRestaurateur)
	svc := f.restaurants()
	f.store.failWith = errors.New("write failed")

	_, err := svc.Create(context.Background(), restaurantInput("ownerone1"), pngUpload())

	var ie *domain.InternalError
	if !errors.As(err, &ie) || ie.Msg != "Could not create restaurant" {
		t.Fatalf("expected InternalError, got %v", err)
	}
	if len(f.images.deleted) != 1 || len(f.images.saved) != 0 {
		t.Fatalf("expected orphaned image to be removed, deleted=%v", f.images.deleted)
	}
}

func TestRestaurantService_Update(t *testing.T) {
	f := newFixture()
	f.store.seedUser("ownerone1", domain.RoleRestaurateur)
	existing := f.store.seedRestaurant("ownerone1", true)
	svc := f.restaurants()

	inactive := false
	in := restaurantInput("ownerone1")
	in.Name = "red fin"
	in.IsActive = &inactive
	updated, err := svc.Update(context.Background(), existing.ID, in)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Red Fin" || updated.IsActive {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if f.store.restaurants[existing.ID].CoverImage != existing.CoverImage {
		t.Fatalf("cover image must survive an update")
	}

	if _, err := svc.GetByID(context.Background(), existing.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deactivated restaurant must not be readable, got %v", err)
	}

	// reactivation goes through the same update
	active := true
	in.IsActive = &active
	if _, err := svc.Update(context.Background(), existing.ID, in); err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), existing.ID); err != nil {
		t.Fatalf("reactivated restaurant must be readable: %v", err)
	}
}

func TestRestaurantService_Update_RequiresActiveFlag(t *testing.T) {
	f := newFixture()
	f.store.seedUser("ownerone1", domain.RoleRestaurateur)
	existing := f.store.seedRestaurant("ownerone1", true)

	_, err := f.restaurants().Update(context.Background(), existing.ID, restaurantInput("ownerone1"))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Msg != "You must provide active field" {
		t.Fatalf("expected missing active flag error, got %v", err)
	}
}

func TestRestaurantService_Update_Missing(t *testing.T) {
	f := newFixture()
	f.store.seedUser("ownerone1", domain.RoleRestaurateur)

	active := true
	in := restaurantInput("ownerone1")
	in.IsActive = &active
	_, err := f.restaurants().Update(context.Background(), newID(), in)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRestaurantService_Reads(t *testing.T) {
	f := newFixture()
	f.store.seedUser("ownerone1", domain.RoleRestaurateur)
	f.store.seedUser("ownertwo2", domain.RoleRestaurateur)
	active := f.store.seedRestaurant("ownerone1", true)
	f.store.seedRestaurant("ownerone1", false)
	svc := f.restaurants()
	ctx := context.Background()

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 || list[0].ID != active.ID {
		t.Fatalf("List: expected only the active restaurant, got %v %v", list, err)
	}

	byOwner, err := svc.GetByOwner(ctx, "OWNERONE1")
	if err != nil || len(byOwner) != 1 {
		t.Fatalf("GetByOwner: got %v %v", byOwner, err)
	}

	_, err = svc.GetByOwner(ctx, "ownertwo2")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Msg != `Restaurateur "@ownertwo2" is not associated to any restaurant` {
		t.Fatalf("GetByOwner without restaurants: got %v", err)
	}

	_, err = svc.GetByOwner(ctx, "nobodyhere")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("GetByOwner for unknown account must be a validation failure, got %v", err)
	}

	if _, err := svc.GetByName(ctx, "Nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByName: expected not found, got %v", err)
	}
}

func TestRestaurantService_MalformedIDNeverReachesStore(t *testing.T) {
	f := newFixture()
	svc := f.restaurants()

	if _, err := svc.GetByID(context.Background(), "not-an-id"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if n := f.store.callCount(); n != 0 {
		t.Fatalf("expected no store calls, got %d", n)
	}
}
