package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solterra/storefront/internal/i18n"
	"github.com/solterra/storefront/internal/server/http/middleware"
)

// PagesHandler serves localized storefront page data.
type PagesHandler struct {
	store *i18n.Store
}

// NewPagesHandler constructs PagesHandler.
func NewPagesHandler(store *i18n.Store) *PagesHandler {
	return &PagesHandler{store: store}
}

// Show handles GET /:locale/*page. The title falls through the translator's
// three tiers: bundle value, page name, raw key.
func (h *PagesHandler) Show(c *gin.Context) {
	locale := middleware.CurrentLocale(c)

	page := strings.Trim(c.Param("page"), "/")
	if page == "" {
		page = "home"
	}

	translator, err := h.store.Translator(locale)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "messages unavailable")
		return
	}

	key := "pages." + strings.ReplaceAll(page, "/", ".") + ".title"
	c.JSON(http.StatusOK, gin.H{
		"locale": locale,
		"page":   page,
		"title":  translator.TranslateDefault(key, page),
	})
}
