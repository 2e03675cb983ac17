package domain

import "context"

type Service interface {
	StaffPerformance(ctx context.Context, req Request) (Report, error)
	DoctorPerformance(ctx context.Context, req Request) (Report, error)
}

type Request struct {
	Range string
	Name  string
}

type Report struct {
	Range     Range     `json:"range"`
	Summaries []Summary `json:"summaries"`
}
