package delete_service

import "context"

type CatalogService interface {
	DeleteService(ctx context.Context, serviceID, providerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
