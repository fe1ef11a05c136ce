package playerstats

import "context"

type Repository interface {
	Increment(ctx context.Context, inc Increment) error
}
