package gateway

import (
	"context"

	"github.com/theirongolddev/finboard/internal/log"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
)

// Publisher announces newly created records.
type Publisher interface {
	PublishRecordCreated(ctx context.Context, collection, recordID, userID string, record any) error
}

// withEvents publishes a record-created event after every successful create.
// Reads pass straight through.
type withEvents struct {
	Gateway
	pub    Publisher
	logger *log.Logger
}

// WithEvents wraps g so creates are announced on pub. A failed publish is
// logged and does not fail the create.
func WithEvents(g Gateway, pub Publisher, logger *log.Logger) Gateway {
	if pub == nil {
		return g
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &withEvents{Gateway: g, pub: pub, logger: logger.WithComponent(log.ComponentEvents)}
}

func (w *withEvents) announce(ctx context.Context, collection, id, userID string, record any) {
	if err := w.pub.PublishRecordCreated(ctx, collection, id, userID, record); err != nil {
		w.logger.WarnContext(ctx, "publishing record event failed",
			log.NewFields().
				WithOperation(log.OpPublish).
				WithCollection(collection).
				WithError(err, log.ErrorTypeNetwork).
				Args()...)
	}
}

func (w *withEvents) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	out, err := w.Gateway.CreateTransaction(ctx, tx)
	if err == nil {
		w.announce(ctx, pipeline.CollTransactions, out.ID, out.UserID, out)
	}
	return out, err
}

func (w *withEvents) CreateBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	out, err := w.Gateway.CreateBudget(ctx, b)
	if err == nil {
		w.announce(ctx, pipeline.CollBudgets, out.ID, out.UserID, out)
	}
	return out, err
}

func (w *withEvents) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	out, err := w.Gateway.CreateAccount(ctx, a)
	if err == nil {
		w.announce(ctx, pipeline.CollAccounts, out.ID, out.UserID, out)
	}
	return out, err
}

func (w *withEvents) CreateCard(ctx context.Context, c model.CreditCard) (model.CreditCard, error) {
	out, err := w.Gateway.CreateCard(ctx, c)
	if err == nil {
		w.announce(ctx, pipeline.CollCards, out.ID, out.UserID, out)
	}
	return out, err
}

func (w *withEvents) CreateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	out, err := w.Gateway.CreateCategory(ctx, c)
	if err == nil {
		w.announce(ctx, pipeline.CollCategories, out.ID, out.UserID, out)
	}
	return out, err
}
