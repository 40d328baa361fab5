// Package user lists staff identities from the remote API. The listing
// endpoint is one of the two calls exempt from bearer authentication.
package user

import (
	"context"
	"strconv"

	"stayadmin/api"
	"stayadmin/models"
)

// Repository is the user data access surface.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
}

// RESTUserRepo implements Repository against the remote API.
type RESTUserRepo struct {
	Client *api.Client
}

func NewRESTUserRepo(client *api.Client) *RESTUserRepo {
	return &RESTUserRepo{Client: client}
}

// List fetches the user listing. Ids arrive as numbers or strings depending
// on the server version, so they are coerced to strings here.
func (r *RESTUserRepo) List(ctx context.Context) ([]models.User, error) {
	var raw []map[string]any
	if err := r.Client.Get(ctx, "/api/V1/users", &raw); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(raw))
	for _, item := range raw {
		out = append(out, models.User{
			ID:    idString(item["id"]),
			Email: stringField(item["email"]),
			Name:  stringField(item["name"]),
		})
	}
	return out, nil
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}
