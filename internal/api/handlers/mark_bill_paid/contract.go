package mark_bill_paid

import "context"

type BillingService interface {
	MarkBillPaid(ctx context.Context, billID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
