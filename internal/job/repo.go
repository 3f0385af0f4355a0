package job

import "context"

type Repository interface {
	Seed(ctx context.Context, jobs []Job) error
	Get(ctx context.Context, id int) (Job, bool, error)
	List(ctx context.Context) ([]Job, error)
}
