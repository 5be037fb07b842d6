package httpapi

import (
	"github.com/AntonStoeckl/gear-rental-go/features/command/addcollectionitem"
	"github.com/AntonStoeckl/gear-rental-go/features/command/approveaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/approverentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/cancelaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/cancelrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/changeitemquantity"
	"github.com/AntonStoeckl/gear-rental-go/features/command/createcollection"
	"github.com/AntonStoeckl/gear-rental-go/features/command/denyaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/denyrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/marknotificationsviewed"
	"github.com/AntonStoeckl/gear-rental-go/features/command/recordborrow"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registeritem"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registerlibrary"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registerpatron"
	"github.com/AntonStoeckl/gear-rental-go/features/command/returnborrowedunits"
	"github.com/AntonStoeckl/gear-rental-go/features/command/setcollectionitems"
	"github.com/AntonStoeckl/gear-rental-go/features/command/submitaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/submitrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/query/borrowinghistory"
	"github.com/AntonStoeckl/gear-rental-go/features/query/currentlyborrowed"
	"github.com/AntonStoeckl/gear-rental-go/features/query/gearcatalog"
	"github.com/AntonStoeckl/gear-rental-go/features/query/itemactivity"
	"github.com/AntonStoeckl/gear-rental-go/features/query/itemavailability"
	"github.com/AntonStoeckl/gear-rental-go/features/query/libraryoverview"
	"github.com/AntonStoeckl/gear-rental-go/features/query/rentalrequestsbystatus"
	"github.com/AntonStoeckl/gear-rental-go/features/query/uncollecteditems"
	"github.com/AntonStoeckl/gear-rental-go/features/query/unreadnotifications"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell/observable"
)

// Handlers bundles one handler per use case. Each of them is wrapped with the observable decorators.
type Handlers struct {
	RegisterPatron          shell.CoreCommandHandler[registerpatron.Command]
	RegisterLibrary         shell.CoreCommandHandler[registerlibrary.Command]
	RegisterItem            shell.CoreCommandHandler[registeritem.Command]
	ChangeItemQuantity      shell.CoreCommandHandler[changeitemquantity.Command]
	SubmitRentalRequest     shell.CoreCommandHandler[submitrentalrequest.Command]
	ApproveRentalRequest    shell.CoreCommandHandler[approverentalrequest.Command]
	DenyRentalRequest       shell.CoreCommandHandler[denyrentalrequest.Command]
	CancelRentalRequest     shell.CoreCommandHandler[cancelrentalrequest.Command]
	RecordBorrow            shell.CoreCommandHandler[recordborrow.Command]
	ReturnBorrowedUnits     shell.CoreCommandHandler[returnborrowedunits.Command]
	CreateCollection        shell.CoreCommandHandler[createcollection.Command]
	AddCollectionItem       shell.CoreCommandHandler[addcollectionitem.Command]
	SetCollectionItems      shell.CoreCommandHandler[setcollectionitems.Command]
	SubmitAccessRequest     shell.CoreCommandHandler[submitaccessrequest.Command]
	ApproveAccessRequest    shell.CoreCommandHandler[approveaccessrequest.Command]
	DenyAccessRequest       shell.CoreCommandHandler[denyaccessrequest.Command]
	CancelAccessRequest     shell.CoreCommandHandler[cancelaccessrequest.Command]
	MarkNotificationsViewed shell.CoreCommandHandler[marknotificationsviewed.Command]

	ItemAvailability       shell.CoreQueryHandler[itemavailability.Query, itemavailability.ItemAvailability]
	CurrentlyBorrowed      shell.CoreQueryHandler[currentlyborrowed.Query, currentlyborrowed.CurrentlyBorrowed]
	BorrowingHistory       shell.CoreQueryHandler[borrowinghistory.Query, borrowinghistory.BorrowingHistory]
	RentalRequestsByStatus shell.CoreQueryHandler[rentalrequestsbystatus.Query, rentalrequestsbystatus.RentalRequests]
	UnreadNotifications    shell.CoreQueryHandler[unreadnotifications.Query, unreadnotifications.UnreadNotifications]
	UncollectedItems       shell.CoreQueryHandler[uncollecteditems.Query, uncollecteditems.UncollectedItems]
	LibraryOverview        shell.CoreQueryHandler[libraryoverview.Query, libraryoverview.LibraryOverview]
	GearCatalog            shell.CoreQueryHandler[gearcatalog.Query, gearcatalog.GearCatalog]
	ItemActivity           shell.CoreQueryHandler[itemactivity.Query, itemactivity.ItemActivity]
}

// Instrumentation carries the optional collectors handed to every observable wrapper. Nil fields are skipped.
type Instrumentation struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// NewHandlers builds and instruments the handlers of all use cases on top of one engine.
func NewHandlers(engine rental.Engine, instrumentation Instrumentation, retryOptions ...shell.RetryOption) (Handlers, error) {
	b := &builder{instrumentation: instrumentation}

	h := Handlers{
		RegisterPatron: command[registerpatron.Command](b, registerpatron.NewCommandHandler(engine,
			registerpatron.WithRetryOptions(retryOptions...))),
		RegisterLibrary: command[registerlibrary.Command](b, registerlibrary.NewCommandHandler(engine,
			registerlibrary.WithRetryOptions(retryOptions...))),
		RegisterItem: command[registeritem.Command](b, registeritem.NewCommandHandler(engine,
			registeritem.WithRetryOptions(retryOptions...))),
		ChangeItemQuantity: command[changeitemquantity.Command](b, changeitemquantity.NewCommandHandler(engine,
			changeitemquantity.WithRetryOptions(retryOptions...))),
		SubmitRentalRequest: command[submitrentalrequest.Command](b, submitrentalrequest.NewCommandHandler(engine,
			submitrentalrequest.WithRetryOptions(retryOptions...))),
		ApproveRentalRequest: command[approverentalrequest.Command](b, approverentalrequest.NewCommandHandler(engine,
			approverentalrequest.WithRetryOptions(retryOptions...))),
		DenyRentalRequest: command[denyrentalrequest.Command](b, denyrentalrequest.NewCommandHandler(engine,
			denyrentalrequest.WithRetryOptions(retryOptions...))),
		CancelRentalRequest: command[cancelrentalrequest.Command](b, cancelrentalrequest.NewCommandHandler(engine,
			cancelrentalrequest.WithRetryOptions(retryOptions...))),
		RecordBorrow: command[recordborrow.Command](b, recordborrow.NewCommandHandler(engine,
			recordborrow.WithRetryOptions(retryOptions...))),
		ReturnBorrowedUnits: command[returnborrowedunits.Command](b, returnborrowedunits.NewCommandHandler(engine,
			returnborrowedunits.WithRetryOptions(retryOptions...))),
		CreateCollection: command[createcollection.Command](b, createcollection.NewCommandHandler(engine,
			createcollection.WithRetryOptions(retryOptions...))),
		AddCollectionItem: command[addcollectionitem.Command](b, addcollectionitem.NewCommandHandler(engine,
			addcollectionitem.WithRetryOptions(retryOptions...))),
		SetCollectionItems: command[setcollectionitems.Command](b, setcollectionitems.NewCommandHandler(engine,
			setcollectionitems.WithRetryOptions(retryOptions...))),
		SubmitAccessRequest: command[submitaccessrequest.Command](b, submitaccessrequest.NewCommandHandler(engine,
			submitaccessrequest.WithRetryOptions(retryOptions...))),
		ApproveAccessRequest: command[approveaccessrequest.Command](b, approveaccessrequest.NewCommandHandler(engine,
			approveaccessrequest.WithRetryOptions(retryOptions...))),
		DenyAccessRequest: command[denyaccessrequest.Command](b, denyaccessrequest.NewCommandHandler(engine,
			denyaccessrequest.WithRetryOptions(retryOptions...))),
		CancelAccessRequest: command[cancelaccessrequest.Command](b, cancelaccessrequest.NewCommandHandler(engine,
			cancelaccessrequest.WithRetryOptions(retryOptions...))),
		MarkNotificationsViewed: command[marknotificationsviewed.Command](b, marknotificationsviewed.NewCommandHandler(engine,
			marknotificationsviewed.WithRetryOptions(retryOptions...))),

		ItemAvailability:       query[itemavailability.Query, itemavailability.ItemAvailability](b, itemavailability.NewQueryHandler(engine)),
		CurrentlyBorrowed:      query[currentlyborrowed.Query, currentlyborrowed.CurrentlyBorrowed](b, currentlyborrowed.NewQueryHandler(engine)),
		BorrowingHistory:       query[borrowinghistory.Query, borrowinghistory.BorrowingHistory](b, borrowinghistory.NewQueryHandler(engine)),
		RentalRequestsByStatus: query[rentalrequestsbystatus.Query, rentalrequestsbystatus.RentalRequests](b, rentalrequestsbystatus.NewQueryHandler(engine)),
		UnreadNotifications:    query[unreadnotifications.Query, unreadnotifications.UnreadNotifications](b, unreadnotifications.NewQueryHandler(engine)),
		UncollectedItems:       query[uncollecteditems.Query, uncollecteditems.UncollectedItems](b, uncollecteditems.NewQueryHandler(engine)),
		LibraryOverview:        query[libraryoverview.Query, libraryoverview.LibraryOverview](b, libraryoverview.NewQueryHandler(engine)),
		GearCatalog:            query[gearcatalog.Query, gearcatalog.GearCatalog](b, gearcatalog.NewQueryHandler(engine)),
		ItemActivity:           query[itemactivity.Query, itemactivity.ItemActivity](b, itemactivity.NewQueryHandler(engine)),
	}

	if b.err != nil {
		return Handlers{}, b.err
	}

	return h, nil
}

// builder keeps the first wrapper construction error so NewHandlers can stay a flat struct literal.
type builder struct {
	instrumentation Instrumentation
	err             error
}

func command[C shell.Command](b *builder, core shell.CoreCommandHandler[C]) shell.CoreCommandHandler[C] {
	wrapper, err := observable.NewCommandWrapper(
		core,
		observable.WithCommandMetrics[C](b.instrumentation.Metrics),
		observable.WithCommandTracing[C](b.instrumentation.Tracing),
		observable.WithCommandContextualLogging[C](b.instrumentation.ContextualLogger),
		observable.WithCommandLogging[C](b.instrumentation.Logger),
	)
	if err != nil {
		b.err = firstErr(b.err, err)
		return core
	}

	return wrapper
}

func query[Q shell.Query, R any](b *builder, core shell.CoreQueryHandler[Q, R]) shell.CoreQueryHandler[Q, R] {
	wrapper, err := observable.NewQueryWrapper(
		core,
		observable.WithQueryMetrics[Q, R](b.instrumentation.Metrics),
		observable.WithQueryTracing[Q, R](b.instrumentation.Tracing),
		observable.WithQueryContextualLogging[Q, R](b.instrumentation.ContextualLogger),
		observable.WithQueryLogging[Q, R](b.instrumentation.Logger),
	)
	if err != nil {
		b.err = firstErr(b.err, err)
		return core
	}

	return wrapper
}

func firstErr(first, next error) error {
	if first != nil {
		return first
	}

	return next
}
