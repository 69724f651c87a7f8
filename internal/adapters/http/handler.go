package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
	"github.com/KillerxG/RPG-YGO-Delta/internal/ports"
)

// SheetRenderer turns a draw result into an encoded contact sheet.
type SheetRenderer interface {
	RenderPNG(ctx context.Context, cards []domain.DrawnCard, w io.Writer) error
}

type Handler struct {
	boosters *app.BoosterService
	gallery  *app.GalleryService
	catalog  ports.Catalog
	sheet    SheetRenderer
	log      *slog.Logger
}

func NewHandler(boosters *app.BoosterService, gallery *app.GalleryService, catalog ports.Catalog, sheet SheetRenderer, logger *slog.Logger) *Handler {
	return &Handler{
		boosters: boosters,
		gallery:  gallery,
		catalog:  catalog,
		sheet:    sheet,
		log:      logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	v1.GET("/boosters", h.ListBoosters)
	v1.GET("/decks", h.ListDecks)
	v1.POST("/boosters/:name/open", h.OpenBooster)
	v1.POST("/decks/:name/open", h.OpenDeck)
	v1.GET("/boosters/:name/sheet.png", h.BoosterSheet)
	v1.GET("/decks/:name/sheet.png", h.DeckSheet)
	v1.GET("/images/*", h.Image)

	v1.GET("/players", h.ListPlayers)
	v1.POST("/players", h.AddPlayer)
	v1.GET("/players/:name/cards", h.PlayerCollection)
	v1.GET("/players/:name/cards/:rarity", h.PlayerCards)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListBoosters(c echo.Context) error {
	ls, err := h.boosters.ListBoosters(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toListings(ls))
}

func (h *Handler) ListDecks(c echo.Context) error {
	ls, err := h.boosters.ListDecks(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toListings(ls))
}

func (h *Handler) OpenBooster(c echo.Context) error {
	o, err := h.boosters.OpenBooster(c.Request().Context(), param(c, "name"), c.QueryParam("policy"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toOpening(o, requestID(c)))
}

func (h *Handler) OpenDeck(c echo.Context) error {
	o, err := h.boosters.OpenDeck(c.Request().Context(), param(c, "name"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toOpening(o, requestID(c)))
}

func (h *Handler) BoosterSheet(c echo.Context) error {
	o, err := h.boosters.OpenBooster(c.Request().Context(), param(c, "name"), c.QueryParam("policy"))
	if err != nil {
		return h.mapError(c, err)
	}
	return h.writeSheet(c, o)
}

func (h *Handler) DeckSheet(c echo.Context) error {
	o, err := h.boosters.OpenDeck(c.Request().Context(), param(c, "name"))
	if err != nil {
		return h.mapError(c, err)
	}
	return h.writeSheet(c, o)
}

func (h *Handler) writeSheet(c echo.Context, o app.Opening) error {
	var buf bytes.Buffer
	if err := h.sheet.RenderPNG(c.Request().Context(), o.Result.Cards, &buf); err != nil {
		return h.mapError(c, err)
	}
	c.Response().Header().Set("X-Opening-Id", o.ID.String())
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// Image streams one catalog image. Only allow-listed extensions are served.
func (h *Handler) Image(c echo.Context) error {
	p := param(c, "*")
	rc, err := h.catalog.Open(c.Request().Context(), p)
	if err != nil {
		return h.mapError(c, err)
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(p)))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}

func (h *Handler) ListPlayers(c echo.Context) error {
	players, err := h.gallery.ListPlayers(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	if players == nil {
		players = []string{}
	}
	return c.JSON(http.StatusOK, PlayersResponse{Players: players, Rarities: h.gallery.Rarities()})
}

func (h *Handler) AddPlayer(c echo.Context) error {
	var req PlayerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "body must be a JSON object with a name"})
	}
	if err := h.gallery.AddPlayer(c.Request().Context(), req.Name); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, PlayerRequest{Name: strings.TrimSpace(req.Name)})
}

func (h *Handler) PlayerCollection(c echo.Context) error {
	groups, err := h.gallery.PlayerCollection(c.Request().Context(), param(c, "name"))
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]RarityResponse, len(groups))
	for i, g := range groups {
		out[i] = RarityResponse{Rarity: g.Rarity, Cards: toGallery(g.Cards)}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) PlayerCards(c echo.Context) error {
	rarity := param(c, "rarity")
	cards, err := h.gallery.PlayerCards(c.Request().Context(), param(c, "name"), rarity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, RarityResponse{Rarity: rarity, Cards: toGallery(cards)})
}

// param returns a path parameter, unescaping it when the router matched
// against the raw path.
func param(c echo.Context, name string) string {
	v := c.Param(name)
	if !strings.Contains(v, "%") {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

// StatusFor maps a service error to its HTTP status and body.
func StatusFor(err error) (int, ErrorResponse) {
	var insufficient *domain.InsufficientCardsError
	switch {
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: insufficient.Error(), Shortfalls: insufficient.Shortfalls}
	case errors.Is(err, app.ErrSourceNotFound), errors.Is(err, app.ErrPlayerNotFound), errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnknownPolicy), errors.Is(err, app.ErrPolicyNotAvailable),
		errors.Is(err, app.ErrUnknownRarity), errors.Is(err, app.ErrInvalidPlayerName),
		errors.Is(err, domain.ErrNotImage):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrPlayerAlreadyExists):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
	}
}

func (h *Handler) mapError(c echo.Context, err error) error {
	status, body := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(c.Request().Context(), "internal error", "request_id", requestID(c), "error", err)
	}
	return c.JSON(status, body)
}
