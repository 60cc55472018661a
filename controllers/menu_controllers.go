package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/models"
	"github.com/papagsgrill/pos-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetCatalog -> full customer-facing catalog: available items grouped by
// category, ordered by category then code. Read-only and cacheable, so an
// offline layer may serve it when the network is down.
func (mc *MenuController) GetCatalog(c *gin.Context) {
	var categories []models.MenuCategory
	err := mc.DB.
		Order("sort_order ASC").
		Preload("Menus", func(db *gorm.DB) *gorm.DB {
			return db.Where("available = ?", true).Order("code ASC, name ASC")
		}).
		Preload("Menus.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&categories).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	utils.RespondJSON(c, http.StatusOK, "Menu catalog", categories)
}

// GetMenusByCategory -> items of a single category slug.
func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	slug := c.Query("category")

	var category models.MenuCategory
	if err := mc.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var menus []models.Menu
	err := mc.DB.
		Where("category_id = ? AND available = ?", category.ID, true).
		Order("code ASC, name ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&menus).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	utils.RespondJSON(c, http.StatusOK, "Menus by category", menus)
}
