package generate_bills

import (
	"context"

	generateBills "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/generate_bills"
)

type GenerateBillsUseCase interface {
	Execute(ctx context.Context, req *generateBills.Request) (*generateBills.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
