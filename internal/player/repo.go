package player

import "context"

type Repository interface {
	Create(ctx context.Context, p Player) (Player, error)
	Get(ctx context.Context, id int64) (Player, bool, error)
	Update(ctx context.Context, p Player) (Player, error)
	List(ctx context.Context) ([]Player, error)
	Count(ctx context.Context) (int, error)
}
