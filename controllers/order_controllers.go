package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/models"
	"github.com/papagsgrill/pos-app/utils"
)

// errOrderRaced marks a status write that matched zero rows because another
// request changed the order between this request's read and its update.
var errOrderRaced = errors.New("order was updated concurrently")

type OrderController struct {
	DB            *gorm.DB
	SnapshotLimit int
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, SnapshotLimit: 50}
}

// Checkout -> turn the session cart plus fulfillment inputs into an order.
// The cart is only cleared once the insert has committed; on any failure the
// customer can retry with the cart intact.
func (oc *OrderController) Checkout(c *gin.Context) {
	cartCtrl := CartController{DB: oc.DB}
	sid := cartCtrl.cartSession(c)

	var req struct {
		CustomerName  string `json:"customer_name"`
		OrderType     string `json:"order_type" binding:"required"`
		TableNumber   string `json:"table_number"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Local precondition checks, rejected before anything touches the store.
	orderType := models.OrderType(req.OrderType)
	if !orderType.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order_type must be dine_in or takeout"))
		return
	}
	ct := cartCtrl.loadCart(sid)
	if ct.Empty() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}
	if orderType == models.OrderTypeDineIn && req.TableNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table number is required for dine-in orders"))
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	now := time.Now()
	subtotal := ct.Subtotal()
	order := models.Order{
		Code:          uuid.NewString(),
		CustomerName:  req.CustomerName,
		OrderType:     orderType,
		TableNumber:   req.TableNumber,
		Subtotal:      subtotal,
		Tax:           0,
		Total:         subtotal,
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, line := range ct.Lines {
		order.Items = append(order.Items, models.OrderItem{
			Code:        line.Code,
			Name:        line.Name,
			OptionLabel: line.OptionLabel,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			CreatedAt:   now,
		})
	}

	// Order, items, outbox event and cart cleanup land in one transaction:
	// either the whole order exists or none of it does.
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OrderEvent{
			OrderID:   order.ID,
			Action:    models.EventActionInsert,
			ChangedAt: now,
		}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CartRecord{}, "session_id = ?", sid).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created (%s, %d items, total %s)",
		order.Code, order.OrderType, len(order.Items), utils.FormatCurrencyPHP(order.Total))

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByCode -> customer-facing lookup of a single order by public code.
func (oc *OrderController) GetOrderByCode(c *gin.Context) {
	code := c.Param("code")

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "code = ?", code).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetRecentOrders -> the staff snapshot: recent orders newest first, with an
// optional dashboard filter (active/completed/all).
func (oc *OrderController) GetRecentOrders(c *gin.Context) {
	limit := oc.SnapshotLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	q := oc.DB.Preload("Items").Order("created_at DESC").Limit(limit)
	switch c.Query("filter") {
	case "active":
		q = q.Where("status IN ?", []models.OrderStatus{
			models.StatusPending, models.StatusPreparing, models.StatusReady,
		})
	case "completed":
		q = q.Where("status = ?", models.StatusCompleted)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recent orders", orders)
}

// UpdateOrderStatus -> single-field lifecycle transition. Only status and
// updated_at are written; the item snapshot and pricing never change here.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	next := models.OrderStatus(req.Status)

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// A repeated click on the same action is idempotent, not an error.
	if order.Status == next {
		utils.RespondJSON(c, http.StatusOK, "Order status unchanged", order)
		return
	}

	newStatus, err := order.Status.Transition(next)
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	// Compare-and-swap on the status we read: if another staff member moved
	// the order in between, zero rows match and nothing is written. Without
	// this, two racing requests both pass the guard from the same stale read
	// and the second write can resurrect a terminal order.
	now := time.Now()
	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{
				"status":     newStatus,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errOrderRaced
		}
		return tx.Create(&models.OrderEvent{
			OrderID:   order.ID,
			Action:    models.EventActionUpdate,
			ChangedAt: now,
		}).Error
	})
	if errors.Is(err, errOrderRaced) {
		// Lost the race: re-read and answer from the winning state.
		if err := oc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		if order.Status == next {
			utils.RespondJSON(c, http.StatusOK, "Order status unchanged", order)
			return
		}
		if _, terr := order.Status.Transition(next); terr != nil {
			utils.RespondError(c, http.StatusConflict, terr)
			return
		}
		utils.RespondError(c, http.StatusConflict, errOrderRaced)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.Status = newStatus
	order.UpdatedAt = now

	role, _ := c.Get("role")
	utils.InfoLogger.Printf("Order #%d -> %s (by %v)", order.ID, newStatus, role)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> admin cleanup; the feed tells every session to drop it.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderEvent{
			OrderID:   uint(id),
			Action:    models.EventActionDelete,
			ChangedAt: time.Now(),
		}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
