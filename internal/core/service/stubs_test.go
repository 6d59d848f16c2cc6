package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
	"github.com/cafecritique/review-api/internal/core/validation"
)

// memStore is an in-memory stand-in for every repository. calls counts store
// round trips so tests can assert a request never reached the store.
type memStore struct {
	mu          sync.Mutex
	calls       int
	users       map[string]*domain.User
	restaurants map[string]*domain.Restaurant
	blogs       map[string]*domain.Blog
	comments    map[string]*domain.Comment
	reactions   map[string]*domain.Reaction
	ratings     map[string]*domain.Rating
	failWith    error
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[string]*domain.User{},
		restaurants: map[string]*domain.Restaurant{},
		blogs:       map[string]*domain.Blog{},
		comments:    map[string]*domain.Comment{},
		reactions:   map[string]*domain.Reaction{},
		ratings:     map[string]*domain.Rating{},
	}
}

func newID() string { return primitive.NewObjectID().Hex() }

func (m *memStore) enter() func() {
	m.mu.Lock()
	m.calls++
	return m.mu.Unlock
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memStore) resetCalls() {
	m.mu.Lock()
	m.calls = 0
	m.mu.Unlock()
}

// seeding helpers bypass the call counter.

func (m *memStore) seedUser(username string, role domain.Role) *domain.User {
	u := &domain.User{ID: newID(), Username: username, Email: username + "@example.com", Role: role}
	m.users[u.ID] = u
	return u
}

func (m *memStore) seedRestaurant(owner string, active bool) *domain.Restaurant {
	r := &domain.Restaurant{ID: newID(), Name: "Blue Fin", Restaurateur: owner, IsActive: active, CoverImage: "myImage-1.png"}
	m.restaurants[r.ID] = r
	return r
}

func (m *memStore) seedBlog(restaurantID, blogger string) *domain.Blog {
	b := &domain.Blog{ID: newID(), Title: "Great Sushi", Content: "Loved it", Restaurant: restaurantID, Blogger: blogger}
	m.blogs[b.ID] = b
	return b
}

// ── users ────────────────────────────────────────────────────────────────────

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	defer r.enter()()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrDuplicate
		}
	}
	c := *u
	c.ID = newID()
	r.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	defer r.enter()()
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	defer r.enter()()
	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) List(context.Context) ([]*domain.User, error) {
	defer r.enter()()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

// ── restaurants ──────────────────────────────────────────────────────────────

type memRestaurants struct{ *memStore }

func (r memRestaurants) Create(_ context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	defer r.enter()()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c := *rest
	c.ID = newID()
	r.restaurants[c.ID] = &c
	out := c
	return &out, nil
}

func (r memRestaurants) Replace(_ context.Context, rest *domain.Restaurant) error {
	defer r.enter()()
	existing, ok := r.restaurants[rest.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *rest
	c.CoverImage = existing.CoverImage
	r.restaurants[c.ID] = &c
	return nil
}

func (r memRestaurants) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	defer r.enter()()
	if rest, ok := r.restaurants[id]; ok {
		c := *rest
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memRestaurants) FindActiveByID(_ context.Context, id string) (*domain.Restaurant, error) {
	defer r.enter()()
	if rest, ok := r.restaurants[id]; ok && rest.IsActive {
		c := *rest
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memRestaurants) filter(keep func(*domain.Restaurant) bool) []*domain.Restaurant {
	var out []*domain.Restaurant
	for _, rest := range r.restaurants {
		if rest.IsActive && keep(rest) {
			c := *rest
			out = append(out, &c)
		}
	}
	return out
}

func (r memRestaurants) ListActive(context.Context) ([]*domain.Restaurant, error) {
	defer r.enter()()
	return r.filter(func(*domain.Restaurant) bool { return true }), nil
}

func (r memRestaurants) ListActiveByName(_ context.Context, name string) ([]*domain.Restaurant, error) {
	defer r.enter()()
	return r.filter(func(rest *domain.Restaurant) bool { return rest.Name == name }), nil
}

func (r memRestaurants) ListActiveByOwner(_ context.Context, username string) ([]*domain.Restaurant, error) {
	defer r.enter()()
	return r.filter(func(rest *domain.Restaurant) bool { return rest.Restaurateur == username }), nil
}

func (r memRestaurants) ActiveIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	defer r.enter()()
	out := map[string]struct{}{}
	for _, id := range ids {
		if rest, ok := r.restaurants[id]; ok && rest.IsActive {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// ── blogs ────────────────────────────────────────────────────────────────────

type memBlogs struct{ *memStore }

func (r memBlogs) Create(_ context.Context, b *domain.Blog) (*domain.Blog, error) {
	defer r.enter()()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c := *b
	c.ID = newID()
	r.blogs[c.ID] = &c
	out := c
	return &out, nil
}

func (r memBlogs) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	defer r.enter()()
	if b, ok := r.blogs[id]; ok {
		c := *b
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memBlogs) List(context.Context) ([]*domain.Blog, error) {
	defer r.enter()()
	out := make([]*domain.Blog, 0, len(r.blogs))
	for _, b := range r.blogs {
		c := *b
		out = append(out, &c)
	}
	return out, nil
}

func (r memBlogs) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Blog, error) {
	defer r.enter()()
	var out []*domain.Blog
	for _, b := range r.blogs {
		if b.Restaurant == restaurantID {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memBlogs) Delete(_ context.Context, id string) error {
	defer r.enter()()
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.blogs, id)
	return nil
}

// ── comments ─────────────────────────────────────────────────────────────────

type memComments struct{ *memStore }

func (r memComments) Create(_ context.Context, cm *domain.Comment) (*domain.Comment, error) {
	defer r.enter()()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c := *cm
	c.ID = newID()
	r.comments[c.ID] = &c
	out := c
	return &out, nil
}

func (r memComments) FindByID(_ context.Context, blogID, id string) (*domain.Comment, error) {
	defer r.enter()()
	if cm, ok := r.comments[id]; ok && cm.Blog == blogID {
		c := *cm
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memComments) ListByBlog(_ context.Context, blogID string) ([]*domain.Comment, error) {
	defer r.enter()()
	var out []*domain.Comment
	for _, cm := range r.comments {
		if cm.Blog == blogID {
			c := *cm
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memComments) Delete(_ context.Context, blogID, id string) error {
	defer r.enter()()
	if cm, ok := r.comments[id]; !ok || cm.Blog != blogID {
		return domain.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r memComments) DeleteByBlog(_ context.Context, blogID string) (int64, error) {
	defer r.enter()()
	if r.failWith != nil {
		return 0, r.failWith
	}
	var n int64
	for id, cm := range r.comments {
		if cm.Blog == blogID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

// ── reactions ────────────────────────────────────────────────────────────────

type memReactions struct{ *memStore }

func (r memReactions) Upsert(_ context.Context, re *domain.Reaction) (*domain.Reaction, bool, error) {
	defer r.enter()()
	if r.failWith != nil {
		return nil, false, r.failWith
	}
	for _, existing := range r.reactions {
		if existing.Blog == re.Blog && existing.Username == re.Username {
			existing.Type = re.Type
			existing.Timestamp = re.Timestamp
			c := *existing
			return &c, false, nil
		}
	}
	c := *re
	c.ID = newID()
	r.reactions[c.ID] = &c
	out := c
	return &out, true, nil
}

func (r memReactions) FindByID(_ context.Context, blogID, id string) (*domain.Reaction, error) {
	defer r.enter()()
	if re, ok := r.reactions[id]; ok && re.Blog == blogID {
		c := *re
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (r memReactions) ListByBlog(_ context.Context, blogID string) ([]*domain.Reaction, error) {
	defer r.enter()()
	var out []*domain.Reaction
	for _, re := range r.reactions {
		if re.Blog == blogID {
			c := *re
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memReactions) DeleteByBlog(_ context.Context, blogID string) (int64, error) {
	defer r.enter()()
	var n int64
	for id, re := range r.reactions {
		if re.Blog == blogID {
			delete(r.reactions, id)
			n++
		}
	}
	return n, nil
}

// ── ratings ──────────────────────────────────────────────────────────────────

type memRatings struct{ *memStore }

func (r memRatings) Upsert(_ context.Context, ra *domain.Rating) (*domain.Rating, bool, error) {
	defer r.enter()()
	if r.failWith != nil {
		return nil, false, r.failWith
	}
	for _, existing := range r.ratings {
		if existing.Restaurant == ra.Restaurant && existing.Blogger == ra.Blogger {
			existing.Stars = ra.Stars
			existing.Timestamp = ra.Timestamp
			c := *existing
			return &c, false, nil
		}
	}
	c := *ra
	c.ID = newID()
	r.ratings[c.ID] = &c
	out := c
	return &out, true, nil
}

func (r memRatings) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Rating, error) {
	defer r.enter()()
	var out []*domain.Rating
	for _, ra := range r.ratings {
		if ra.Restaurant == restaurantID {
			c := *ra
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memRatings) DeleteByKey(_ context.Context, restaurantID, blogger string) error {
	defer r.enter()()
	for id, ra := range r.ratings {
		if ra.Restaurant == restaurantID && ra.Blogger == blogger {
			delete(r.ratings, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── collaborators ────────────────────────────────────────────────────────────

type memImages struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newMemImages() *memImages { return &memImages{saved: map[string][]byte{}} }

func (s *memImages) Save(_ context.Context, img *ports.ImageUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	ref := "myImage-" + newID()
	s.saved[ref] = img.Data
	return ref, nil
}

func (s *memImages) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, ref)
	s.deleted = append(s.deleted, ref)
	return nil
}

type recordingPurger struct {
	mu  sync.Mutex
	ids []string
}

func (p *recordingPurger) Enqueue(blogID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, blogID)
}

// mutexLocker serialises keys in-process.
type mutexLocker struct {
	mu       sync.Mutex
	acquired []string
	err      error
}

func (l *mutexLocker) Acquire(_ context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.acquired = append(l.acquired, key)
	return l.mu.Unlock, nil
}

// fixture wires every service against one memStore.
type fixture struct {
	store  *memStore
	images *memImages
	purger *recordingPurger
	locker *mutexLocker
	refs   *validation.References
	val    *validation.Validator
}

func newFixture() *fixture {
	store := newMemStore()
	return &fixture{
		store:  store,
		images: newMemImages(),
		purger: &recordingPurger{},
		locker: &mutexLocker{},
		refs:   validation.NewReferences(memUsers{store}, memRestaurants{store}, memBlogs{store}),
		val:    validation.New(),
	}
}
