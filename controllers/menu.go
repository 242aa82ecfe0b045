package controllers

import (
	"net/http"

	"tacotown/catalog"
)

// MenuController serves the menu catalog
type MenuController struct {
	Catalog *catalog.Catalog
}

func NewMenuController(cat *catalog.Catalog) *MenuController {
	return &MenuController{Catalog: cat}
}

// GetMenu returns the full menu, categories in authored order.
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, "", mc.Catalog.Categories())
}
