package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okerssen/inventory-api/internal/api/handler/v1/request"
	"github.com/okerssen/inventory-api/internal/api/handler/v1/response"
	"github.com/okerssen/inventory-api/internal/domain"
	"github.com/okerssen/inventory-api/internal/service"
)

type InventoryService interface {
	ListItems() []domain.Item
	FindByCode(ean string) (int, domain.Item, error)
	AddItem(item domain.Item) error
	UpdateItem(position int, item domain.Item) error
	DeleteItem(position int) error
	ImportBatch(r io.Reader) (domain.ReconcileReport, error)
	Undo() error
	UndoDepth() int
}

type InventoryHandler struct {
	svc InventoryService
}

func NewInventoryHandler(svc InventoryService) *InventoryHandler {
	return &InventoryHandler{
		svc: svc,
	}
}

// HandleListItems godoc
// @Summary      List all inventory items
// @Description  Returns every item with its position, in collection order
// @Tags         items
// @Produce      json
// @Success      200  {array}   response.Item
// @Router       /items [get]
func (h *InventoryHandler) HandleListItems(ctx *gin.Context) {
	items := h.svc.ListItems()

	ctx.JSON(http.StatusOK, response.NewItemList(items))
}

// HandleLookupItem godoc
// @Summary      Find an item by EAN
// @Description  Returns the first item whose EAN matches the query
// @Tags         items
// @Produce      json
// @Param        ean  query     string  true  "product code"
// @Success      200  {object}  response.Item
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /items/lookup [get]
func (h *InventoryHandler) HandleLookupItem(ctx *gin.Context) {
	ean := ctx.Query("ean")
	if ean == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("query parameter ean is required")))
		return
	}

	position, item, err := h.svc.FindByCode(ean)
	if err != nil {
		if errors.Is(err, service.ErrCodeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ean", ean))
			return
		}

		err = fmt.Errorf("HandleLookupItem -> h.svc.FindByCode -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewItem(position, item))
}

// HandleAddItem godoc
// @Summary      Add an inventory item
// @Description  Appends a new item to the end of the collection
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateItemRequest  true  "item fields"
// @Success      201    {object}  response.Item
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /items [post]
func (h *InventoryHandler) HandleAddItem(ctx *gin.Context) {
	var req request.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item := domain.Item{
		EAN:     req.EAN,
		Amount:  req.Amount,
		Name:    req.Name,
		Popular: req.Popular,
	}

	if err := h.svc.AddItem(item); err != nil {
		err = fmt.Errorf("HandleAddItem -> h.svc.AddItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewItem(len(h.svc.ListItems())-1, item))
}

// HandleUpdateItem godoc
// @Summary      Replace an item at a position
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        position  path      int                        true  "0-based position"
// @Param        input     body      request.UpdateItemRequest  true  "item fields"
// @Success      200       {object}  response.Item
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /items/{position} [put]
func (h *InventoryHandler) HandleUpdateItem(ctx *gin.Context) {
	position, err := strconv.Atoi(ctx.Param("position"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid position: %v", err)))
		return
	}

	var req request.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item := domain.Item{
		EAN:     req.EAN,
		Amount:  req.Amount,
		Name:    req.Name,
		Popular: req.Popular,
	}

	if err := h.svc.UpdateItem(position, item); err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			response.RenderErr(ctx, response.ErrNotFound("item", "position", position))
			return
		}

		err = fmt.Errorf("HandleUpdateItem -> h.svc.UpdateItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewItem(position, item))
}

// HandleDeleteItem godoc
// @Summary      Delete the item at a position
// @Tags         items
// @Produce      json
// @Param        position  path      int  true  "0-based position"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /items/{position} [delete]
func (h *InventoryHandler) HandleDeleteItem(ctx *gin.Context) {
	position, err := strconv.Atoi(ctx.Param("position"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid position: %v", err)))
		return
	}

	if err := h.svc.DeleteItem(position); err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			response.RenderErr(ctx, response.ErrNotFound("item", "position", position))
			return
		}

		err = fmt.Errorf("HandleDeleteItem -> h.svc.DeleteItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleImportBatch godoc
// @Summary      Import a reconciliation batch
// @Description  Uploads a CSV with headers ean, amount, name and merges the
// @Description  amount deltas into the inventory. Returns a per-row report.
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "batch CSV"
// @Success      200   {object}  response.ImportReport
// @Failure      400   {object}  response.Err
// @Failure      422   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /items/import [post]
func (h *InventoryHandler) HandleImportBatch(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("missing file field: %v", err)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("cannot open upload: %v", err)))
		return
	}
	defer file.Close()

	report, err := h.svc.ImportBatch(file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBatchHeader) {
			response.RenderErr(ctx, response.ErrUnprocessableEntity(service.ErrInvalidBatchHeader))
			return
		}

		err = fmt.Errorf("HandleImportBatch -> h.svc.ImportBatch -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewImportReport(report))
}

// HandleUndo godoc
// @Summary      Undo the most recent mutation
// @Description  Restores the snapshot taken before the last add, update,
// @Description  delete or import. One level per call, no redo.
// @Tags         items
// @Produce      json
// @Success      200  {object}  response.Undo
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /items/undo [post]
func (h *InventoryHandler) HandleUndo(ctx *gin.Context) {
	if err := h.svc.Undo(); err != nil {
		if errors.Is(err, service.ErrNothingToUndo) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrNothingToUndo))
			return
		}

		err = fmt.Errorf("HandleUndo -> h.svc.Undo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Undo{
		Message:   "restored previous inventory",
		Remaining: h.svc.UndoDepth(),
	})
}
