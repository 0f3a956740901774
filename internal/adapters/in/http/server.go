// Package http exposes the stock transfer use cases over a JSON REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stocktransfer/internal/core/application/usecases/commands"
	"stocktransfer/internal/core/application/usecases/queries"
	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createTransferHandler  commands.CreateTransferCommandHandler
	sendTransferHandler    commands.SendTransferCommandHandler
	receiveTransferHandler commands.ReceiveTransferCommandHandler
	cancelTransferHandler  commands.CancelTransferCommandHandler

	// Query handlers
	getTransferHandler         queries.GetTransferQueryHandler
	getIncompleteHandler       queries.GetIncompleteTransfersQueryHandler
	getStockOnHandQueryHandler queries.GetStockOnHandQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createTransferHandler commands.CreateTransferCommandHandler,
	sendTransferHandler commands.SendTransferCommandHandler,
	receiveTransferHandler commands.ReceiveTransferCommandHandler,
	cancelTransferHandler commands.CancelTransferCommandHandler,
	getTransferHandler queries.GetTransferQueryHandler,
	getIncompleteHandler queries.GetIncompleteTransfersQueryHandler,
	getStockOnHandQueryHandler queries.GetStockOnHandQueryHandler,
) *Server {
	return &Server{
		createTransferHandler:      createTransferHandler,
		sendTransferHandler:        sendTransferHandler,
		receiveTransferHandler:     receiveTransferHandler,
		cancelTransferHandler:      cancelTransferHandler,
		getTransferHandler:         getTransferHandler,
		getIncompleteHandler:       getIncompleteHandler,
		getStockOnHandQueryHandler: getStockOnHandQueryHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/transfers", s.CreateTransfer)
	api.GET("/transfers", s.GetIncompleteTransfers)
	api.GET("/transfers/:id", s.GetTransfer)
	api.POST("/transfers/:id/send", s.SendTransfer)
	api.POST("/transfers/:id/receive", s.ReceiveTransfer)
	api.POST("/transfers/:id/cancel", s.CancelTransfer)
	api.GET("/locations/:id/stock", s.GetStockOnHand)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateTransfer handles POST /api/v1/transfers - registers a new draft transfer.
func (s *Server) CreateTransfer(ctx echo.Context) error {
	var req createTransferRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	source, err := kernel.UUIDFromString(req.SourceLocationID)
	if err != nil {
		return badRequest(ctx, "Invalid source location id")
	}
	destination, err := kernel.UUIDFromString(req.DestinationLocationID)
	if err != nil {
		return badRequest(ctx, "Invalid destination location id")
	}

	items := make([]commands.TransferItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, productErr := kernel.UUIDFromString(item.ProductID)
		if productErr != nil {
			return badRequest(ctx, "Invalid product id")
		}
		items = append(items, commands.TransferItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	transferID := kernel.NewUUID()

	cmd, err := commands.NewCreateTransferCommand(
		transferID, source, destination, items, req.ExpectedDate, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.createTransferHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, createTransferResponse{ID: transferID.String()})
}

// SendTransfer handles POST /api/v1/transfers/:id/send - dispatches a draft transfer.
func (s *Server) SendTransfer(ctx echo.Context) error {
	transferID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid transfer id")
	}

	cmd, err := commands.NewSendTransferCommand(transferID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.sendTransferHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveTransfer handles POST /api/v1/transfers/:id/receive - records arrived goods.
func (s *Server) ReceiveTransfer(ctx echo.Context) error {
	transferID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid transfer id")
	}

	var req receiveTransferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.ReceiptLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, itemErr := kernel.UUIDFromString(line.ItemID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid item id")
		}
		lines = append(lines, commands.ReceiptLine{
			ItemID:       itemID,
			Quantity:     line.Quantity,
			EvidenceRefs: line.EvidenceRefs,
		})
	}

	cmd, err := commands.NewReceiveTransferCommand(transferID, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.receiveTransferHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelTransfer handles POST /api/v1/transfers/:id/cancel - cancels an undelivered transfer.
func (s *Server) CancelTransfer(ctx echo.Context) error {
	transferID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid transfer id")
	}

	var req cancelTransferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelTransferCommand(transferID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.cancelTransferHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTransfer handles GET /api/v1/transfers/:id - retrieves one transfer with items.
func (s *Server) GetTransfer(ctx echo.Context) error {
	transferID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid transfer id")
	}

	query, err := queries.NewGetTransferQuery(transferID)
	if err != nil {
		return writeError(ctx, err)
	}

	transfer, err := s.getTransferHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]transferItemResponse, len(transfer.Items))
	for i, item := range transfer.Items {
		items[i] = transferItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			OrderedQty:   item.OrderedQty,
			ReceivedQty:  item.ReceivedQty,
			EvidenceRefs: item.EvidenceRefs,
		}
	}

	return ctx.JSON(http.StatusOK, transferResponse{
		ID:                    transfer.ID.String(),
		Status:                transfer.Status,
		SourceLocationID:      transfer.SourceLocation.String(),
		DestinationLocationID: transfer.DestinationLocation.String(),
		ExpectedDate:          transfer.ExpectedDate,
		Notes:                 transfer.Notes,
		ConsignmentReference:  transfer.ConsignmentRef,
		CreatedAt:             transfer.CreatedAt,
		SentAt:                transfer.SentAt,
		ReceivedAt:            transfer.ReceivedAt,
		Items:                 items,
	})
}

// GetIncompleteTransfers handles GET /api/v1/transfers - retrieves in-flight transfers.
func (s *Server) GetIncompleteTransfers(ctx echo.Context) error {
	query := queries.NewGetIncompleteTransfersQuery()

	transfers, err := s.getIncompleteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]transferHeaderResponse, len(transfers))
	for i, transfer := range transfers {
		response[i] = transferHeaderResponse{
			ID:                    transfer.ID.String(),
			Status:                transfer.Status,
			SourceLocationID:      transfer.SourceLocation.String(),
			DestinationLocationID: transfer.DestinationLocation.String(),
			ExpectedDate:          transfer.ExpectedDate,
			CreatedAt:             transfer.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStockOnHand handles GET /api/v1/locations/:id/stock - stock position per product.
func (s *Server) GetStockOnHand(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid location id")
	}

	query, err := queries.NewGetStockOnHandQuery(locationID)
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.getStockOnHandQueryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]stockOnHandResponse, len(records))
	for i, record := range records {
		response[i] = stockOnHandResponse{
			ProductID:     record.ProductID.String(),
			ActualStock:   record.ActualStock,
			ExpectedStock: record.ExpectedStock,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type createTransferRequest struct {
	SourceLocationID      string                      `json:"source_location_id"`
	DestinationLocationID string                      `json:"destination_location_id"`
	Items                 []createTransferItemRequest `json:"items"`
	ExpectedDate          time.Time                   `json:"expected_date"`
	Notes                 string                      `json:"notes"`
}

type createTransferItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createTransferResponse struct {
	ID string `json:"id"`
}

type receiveTransferRequest struct {
	Lines []receiptLineRequest `json:"lines"`
}

type receiptLineRequest struct {
	ItemID       string   `json:"item_id"`
	Quantity     int      `json:"quantity"`
	EvidenceRefs []string `json:"evidence_refs"`
}

type cancelTransferRequest struct {
	Reason string `json:"reason"`
}

type transferItemResponse struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"product_id"`
	OrderedQty   int      `json:"ordered_qty"`
	ReceivedQty  int      `json:"received_qty"`
	EvidenceRefs []string `json:"evidence_refs,omitempty"`
}

type transferResponse struct {
	ID                    string                 `json:"id"`
	Status                string                 `json:"status"`
	SourceLocationID      string                 `json:"source_location_id"`
	DestinationLocationID string                 `json:"destination_location_id"`
	ExpectedDate          time.Time              `json:"expected_date"`
	Notes                 string                 `json:"notes,omitempty"`
	ConsignmentReference  string                 `json:"consignment_reference,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	SentAt                *time.Time             `json:"sent_at,omitempty"`
	ReceivedAt            *time.Time             `json:"received_at,omitempty"`
	Items                 []transferItemResponse `json:"items"`
}

type transferHeaderResponse struct {
	ID                    string    `json:"id"`
	Status                string    `json:"status"`
	SourceLocationID      string    `json:"source_location_id"`
	DestinationLocationID string    `json:"destination_location_id"`
	ExpectedDate          time.Time `json:"expected_date"`
	CreatedAt             time.Time `json:"created_at"`
}

type stockOnHandResponse struct {
	ProductID     string `json:"product_id"`
	ActualStock   int    `json:"actual_stock"`
	ExpectedStock int    `json:"expected_stock"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes by error kind.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrConcurrencyFailed):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrExternalService):
		code = http.StatusBadGateway
	}

	return ctx.JSON(code, errorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
