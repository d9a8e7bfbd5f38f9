package api

import (
	"net/http"

	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	cmds commands.CatalogCommands
	q    queries.BookQueries
}

func NewBookHandler(cmds commands.CatalogCommands, q queries.BookQueries) *BookHandler {
	return &BookHandler{cmds: cmds, q: q}
}

// @Summary List books
// @Description Browse the catalog with keyset pagination
// @Tags books
// @Produce json
// @Param q query string false "Title, author or exact isbn"
// @Param genre query string false "Genre"
// @Param available query bool false "Only books with copies on the shelf"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.Page[resdto.BookResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var query reqdto.BookListQuery
	if !bindQuery(c, &query) {
		return
	}
	items, next, err := h.q.List(c.Request.Context(), query.ToFilter(), query.Cursor(), query.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(resdto.FromBookViews(items), next))
}

// @Summary Get book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	h.respondWithBook(c, http.StatusOK, id)
}

// @Summary Add or restock a book
// @Description With an isbn, restocks an existing book or looks the isbn up in the catalog and
// @Description adds it. With manual=true or without isbn, adds the book from the given fields.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddBookRequest true "Add book request"
// @Success 200 {object} resdto.AddBookResponse "restocked"
// @Success 201 {object} resdto.AddBookResponse "created"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.AddBookRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.IsManual() {
		b, err := h.cmds.ManualAddBook(c.Request.Context(), actor, req.ToManualAdd())
		if err != nil {
			httperr.AbortWithDomainError(c, err)
			return
		}
		h.respondWithAdd(c, http.StatusCreated, b.ID(), false)
		return
	}

	res, err := h.cmds.AddOrRestockBook(c.Request.Context(), actor, req.ToAddOrRestock())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Restocked {
		status = http.StatusOK
	}
	h.respondWithAdd(c, status, res.Book.ID(), res.Restocked)
}

// @Summary Modify book
// @Description Partial update; omitted fields are left untouched
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.UpdateBookRequest true "Changes"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	changes, err := req.ToChanges()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if _, err := h.cmds.ModifyBook(c.Request.Context(), actor, id, changes); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondWithBook(c, http.StatusOK, id)
}

// @Summary Delete book
// @Description Refused while copies are on loan
// @Tags books
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.cmds.DeleteBook(c.Request.Context(), actor, id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookHandler) respondWithBook(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(status, resdto.FromBookView(view))
}

func (h *BookHandler) respondWithAdd(c *gin.Context, status int, id uuid.UUID, restocked bool) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(status, resdto.AddBookResponse{Book: resdto.FromBookView(view), Restocked: restocked})
}
