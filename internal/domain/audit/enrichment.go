package audit

import (
	"context"

	appctx "devinventory/internal/core/context"
)

// EnrichCreatedBy sets CreatedBy and UpdatedBy from the context user.
// If no user is in context, this is a no-op.
func EnrichCreatedBy(ctx context.Context, entity any) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}

	if e, ok := entity.(interface {
		SetCreatedBy(string)
		SetUpdatedBy(string)
	}); ok {
		e.SetCreatedBy(userID)
		e.SetUpdatedBy(userID)
	}
}

// EnrichUpdatedBy sets only UpdatedBy from the context user.
func EnrichUpdatedBy(ctx context.Context, entity any) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}

	if e, ok := entity.(interface{ SetUpdatedBy(string) }); ok {
		e.SetUpdatedBy(userID)
	}
}

func currentUser(ctx context.Context) (userID, email string) {
	if u := appctx.GetUser(ctx); u != nil {
		return u.UserID, u.Email
	}
	return "", ""
}
