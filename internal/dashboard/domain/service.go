package domain

import "context"

type Service interface {
	Get(ctx context.Context, req Request) (Dashboard, error)
}

type Request struct {
	Range string
}
