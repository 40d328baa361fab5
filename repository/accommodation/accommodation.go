// Package accommodation fetches and persists accommodation listings through
// the remote lodging API and serves lookups by id from a session-lifetime cache.
package accommodation

import (
	"context"
	"strconv"
	"sync"

	"stayadmin/api"
	"stayadmin/models"
)

// Input carries the editable accommodation fields for create and update.
type Input struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Repository is the accommodation data access surface.
type Repository interface {
	List(ctx context.Context) ([]models.Accommodation, error)
	GetByID(ctx context.Context, id int) (*models.Accommodation, error)
	Cached(id int) (*models.Accommodation, bool)
	Create(ctx context.Context, in Input) error
	Update(ctx context.Context, id int, in Input) error
}

// RESTAccommodationRepo implements Repository against the remote API. Lookups
// by id populate an append-only cache that lives as long as the repository;
// nothing is ever evicted.
type RESTAccommodationRepo struct {
	Client *api.Client

	mu    sync.Mutex
	cache map[int]models.Accommodation
}

func NewRESTAccommodationRepo(client *api.Client) *RESTAccommodationRepo {
	return &RESTAccommodationRepo{
		Client: client,
		cache:  make(map[int]models.Accommodation),
	}
}

func (r *RESTAccommodationRepo) List(ctx context.Context) ([]models.Accommodation, error) {
	var out []models.Accommodation
	if err := r.Client.Get(ctx, "/api/V1/accomodations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the accommodation from the cache when present, otherwise
// fetches it remotely and caches the result.
func (r *RESTAccommodationRepo) GetByID(ctx context.Context, id int) (*models.Accommodation, error) {
	if acc, ok := r.Cached(id); ok {
		return acc, nil
	}
	var acc models.Accommodation
	if err := r.Client.Get(ctx, "/api/V1/accomodation/"+strconv.Itoa(id), &acc); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache[id] = acc
	r.mu.Unlock()
	return &acc, nil
}

// Cached returns the cached accommodation without touching the network.
func (r *RESTAccommodationRepo) Cached(id int) (*models.Accommodation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.cache[id]
	if !ok {
		return nil, false
	}
	return &acc, true
}

func (r *RESTAccommodationRepo) Create(ctx context.Context, in Input) error {
	return r.Client.Post(ctx, "/api/V1/accomodation", in, nil)
}

func (r *RESTAccommodationRepo) Update(ctx context.Context, id int, in Input) error {
	return r.Client.Put(ctx, "/api/V1/accomodation/"+strconv.Itoa(id), in, nil)
}
