package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/cart"
	"github.com/papagsgrill/pos-app/models"
	"github.com/papagsgrill/pos-app/utils"
)

// SessionHeader carries the opaque cart session id. The server mints one on
// first contact and echoes it on every response; the client sends it back.
const SessionHeader = "X-Cart-Session"

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// cartSession resolves (or mints) the session id and echoes it.
func (cc *CartController) cartSession(c *gin.Context) string {
	sid := c.GetHeader(SessionHeader)
	if sid == "" {
		sid = uuid.NewString()
	}
	c.Header(SessionHeader, sid)
	return sid
}

// loadCart hydrates the persisted cart. A missing or malformed record is a
// cache miss: the customer starts over with an empty cart.
func (cc *CartController) loadCart(sid string) cart.Cart {
	var rec models.CartRecord
	if err := cc.DB.First(&rec, "session_id = ?", sid).Error; err != nil {
		return cart.Cart{}
	}
	return cart.Decode(rec.Payload)
}

// saveCart persists the cart after every mutation. Persist failures are
// logged and swallowed: losing the cached cart is an acceptable degradation.
func (cc *CartController) saveCart(sid string, ct *cart.Cart) {
	payload, err := ct.Encode()
	if err != nil {
		utils.ErrorLogger.Printf("Error encoding cart %s: %v", sid, err)
		return
	}

	var rec models.CartRecord
	err = cc.DB.Where(models.CartRecord{SessionID: sid}).
		Assign(models.CartRecord{Payload: payload, UpdatedAt: time.Now()}).
		FirstOrCreate(&rec).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error persisting cart %s: %v", sid, err)
	}
}

type cartView struct {
	Lines    []cart.Line `json:"lines"`
	Subtotal float64     `json:"subtotal"`
	Count    int         `json:"count"`
}

func viewOf(ct *cart.Cart) cartView {
	return cartView{Lines: ct.Lines, Subtotal: ct.Subtotal(), Count: ct.ItemCount()}
}

// GetCart -> current cart contents plus subtotal.
func (cc *CartController) GetCart(c *gin.Context) {
	sid := cc.cartSession(c)
	ct := cc.loadCart(sid)
	utils.RespondJSON(c, http.StatusOK, "Cart contents", viewOf(&ct))
}

// AddItem -> add one of a menu item (with its chosen option, if any).
func (cc *CartController) AddItem(c *gin.Context) {
	sid := cc.cartSession(c)

	var req struct {
		MenuID   uint  `json:"menu_id" binding:"required"`
		OptionID *uint `json:"option_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := cc.DB.Preload("Options").First(&menu, req.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if !menu.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item is not available"))
		return
	}

	var opt *models.MenuOption
	if len(menu.Options) > 0 {
		if req.OptionID == nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("menu %q requires an option selection", menu.Name))
			return
		}
		opt = menu.OptionByID(*req.OptionID)
		if opt == nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("option does not belong to menu %q", menu.Name))
			return
		}
	}

	ct := cc.loadCart(sid)
	ct.AddLine(&menu, opt)
	cc.saveCart(sid, &ct)

	utils.RespondJSON(c, http.StatusOK, "Item added", viewOf(&ct))
}

// ChangeQuantity -> bump a line's quantity by delta; reaching zero removes it.
func (cc *CartController) ChangeQuantity(c *gin.Context) {
	sid := cc.cartSession(c)

	var req struct {
		Key   string `json:"key" binding:"required"`
		Delta int    `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ct := cc.loadCart(sid)
	if !ct.ChangeQuantity(req.Key, req.Delta) {
		utils.RespondError(c, http.StatusNotFound, errors.New("no such cart line"))
		return
	}
	cc.saveCart(sid, &ct)

	utils.RespondJSON(c, http.StatusOK, "Quantity updated", viewOf(&ct))
}

// RemoveItem -> drop a line unconditionally.
func (cc *CartController) RemoveItem(c *gin.Context) {
	sid := cc.cartSession(c)

	key := c.Query("key")
	if key == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("key query param required"))
		return
	}

	ct := cc.loadCart(sid)
	ct.RemoveLine(key)
	cc.saveCart(sid, &ct)

	utils.RespondJSON(c, http.StatusOK, "Item removed", viewOf(&ct))
}

// ClearCart -> empty the cart and its persisted copy.
func (cc *CartController) ClearCart(c *gin.Context) {
	sid := cc.cartSession(c)

	if err := cc.DB.Delete(&models.CartRecord{}, "session_id = ?", sid).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ct := cart.Cart{}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", viewOf(&ct))
}
