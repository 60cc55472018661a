package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/cart"
	"github.com/papagsgrill/pos-app/controllers"
	"github.com/papagsgrill/pos-app/models"
	"github.com/papagsgrill/pos-app/utils"
)

func setupTestDBForCart(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.MenuCategory{}, &models.Menu{}, &models.MenuOption{},
		&models.CartRecord{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	category := models.MenuCategory{Slug: "grilled", Name: "Grilled Meat"}
	db.Create(&category)
	db.Create(&models.Menu{
		CategoryID: category.ID,
		Code:       "G1",
		Name:       "Hungarian",
		BasePrice:  floatPtr(95),
		Available:  true,
	})
	shrimp := models.Menu{
		CategoryID: category.ID,
		Code:       "F1",
		Name:       "Garlic Butter Shrimp",
		Available:  true,
		Options: []models.MenuOption{
			{Label: "S", Price: 260},
			{Label: "M", Price: 510},
		},
	}
	db.Create(&shrimp)
	db.Create(&models.Menu{
		CategoryID: category.ID,
		Code:       "A6",
		Name:       "Chicken Skin",
		BasePrice:  floatPtr(195),
		Available:  false,
	})
	return db
}

func setupCartRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	cartCtrl := controllers.NewCartController(db)
	r.GET("/cart", cartCtrl.GetCart)
	r.POST("/cart/items", cartCtrl.AddItem)
	r.PATCH("/cart/items", cartCtrl.ChangeQuantity)
	r.DELETE("/cart/items", cartCtrl.RemoveItem)
	r.DELETE("/cart", cartCtrl.ClearCart)
	return r
}

type cartResp struct {
	Data struct {
		Lines    []cart.Line `json:"lines"`
		Subtotal float64     `json:"subtotal"`
		Count    int         `json:"count"`
	} `json:"data"`
}

func menuID(t *testing.T, db *gorm.DB, code string) uint {
	var menu models.Menu
	assert.NoError(t, db.Where("code = ?", code).First(&menu).Error)
	return menu.ID
}

func TestCartAddMergesLines(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)
	session := "merge-session"
	g1 := menuID(t, db, "G1")

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{"menu_id": g1})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, "GET", "/cart", session, nil)
	var resp cartResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, 3, resp.Data.Lines[0].Quantity)
	assert.Equal(t, 285.0, resp.Data.Subtotal)
}

func TestCartOptionSelection(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)
	session := "option-session"
	f1 := menuID(t, db, "F1")

	// An option-priced item demands a selection.
	w := doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{"menu_id": f1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var menu models.Menu
	assert.NoError(t, db.Preload("Options").Where("code = ?", "F1").First(&menu).Error)
	small := menu.Options[0].ID

	w = doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{
		"menu_id": f1, "option_id": small,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp cartResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "S", resp.Data.Lines[0].OptionLabel)
	assert.Equal(t, 260.0, resp.Data.Lines[0].UnitPrice)

	// A foreign option id is rejected.
	w = doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{
		"menu_id": f1, "option_id": 99999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartRejectsUnavailableItem(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)
	a6 := menuID(t, db, "A6")

	w := doJSON(t, r, "POST", "/cart/items", "unavail-session", map[string]interface{}{"menu_id": a6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartQuantityAndRemoval(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)
	session := "qty-session"
	g1 := menuID(t, db, "G1")

	doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{"menu_id": g1})
	doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{"menu_id": g1})

	w := doJSON(t, r, "PATCH", "/cart/items", session, map[string]interface{}{
		"key": "G1|base", "delta": -1,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp cartResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Lines[0].Quantity)

	// Decrementing to zero prunes the line.
	w = doJSON(t, r, "PATCH", "/cart/items", session, map[string]interface{}{
		"key": "G1|base", "delta": -1,
	})
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Lines)

	// Unknown keys 404.
	w = doJSON(t, r, "PATCH", "/cart/items", session, map[string]interface{}{
		"key": "G1|base", "delta": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartPersistsAcrossRequests(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)
	session := "persist-session"
	g1 := menuID(t, db, "G1")

	doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{"menu_id": g1})

	// A fresh request (same device session) sees the stored cart: the
	// "reload survives" property.
	w := doJSON(t, r, "GET", "/cart", session, nil)
	var resp cartResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Count)

	// A different session sees nothing.
	w = doJSON(t, r, "GET", "/cart", "someone-else", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.Count)
}

func TestCartClear(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)
	session := "clear-session"
	g1 := menuID(t, db, "G1")

	doJSON(t, r, "POST", "/cart/items", session, map[string]interface{}{"menu_id": g1})
	w := doJSON(t, r, "DELETE", "/cart", session, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartRecord{}).Where("session_id = ?", session).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartSessionMinted(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t)
	r := setupCartRouter(db)

	// No session header: the server mints one and echoes it.
	w := doJSON(t, r, "GET", "/cart", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(controllers.SessionHeader))
}
