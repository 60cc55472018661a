package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/feed"
	"github.com/papagsgrill/pos-app/models"
	"github.com/papagsgrill/pos-app/utils"
)

// OrderMonitor relays order events from the outbox table to the feed hub.
// Events are written in the same transaction as the order mutation they
// describe, so the outbox never disagrees with the store; a client that
// misses a broadcast repairs itself by re-fetching the snapshot.
type OrderMonitor struct {
	DB       *gorm.DB
	Hub      *feed.Hub
	StopChan chan struct{}
	Interval time.Duration
}

func NewOrderMonitor(db *gorm.DB, hub *feed.Hub) *OrderMonitor {
	return &OrderMonitor{
		DB:       db,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (om *OrderMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.relayPending()
			case <-om.StopChan:
				return
			}
		}
	}()
}

func (om *OrderMonitor) Stop() {
	close(om.StopChan)
}

func (om *OrderMonitor) relayPending() {
	var events []models.OrderEvent

	tx := om.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&events).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching order events: %v", err)
		return
	}

	for _, event := range events {
		om.broadcast(event)

		if err := tx.Model(&models.OrderEvent{}).
			Where("id = ?", event.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking order event as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing order event batch: %v", err)
		tx.Rollback()
		return
	}

	if len(events) > 0 {
		utils.InfoLogger.Printf("Relayed %d order events to %d clients",
			len(events), om.Hub.ClientCount())
	}
}

func (om *OrderMonitor) broadcast(event models.OrderEvent) {
	if event.Action == models.EventActionDelete {
		om.Hub.BroadcastOrderDelete(event.OrderID)
		return
	}

	var order models.Order
	if err := om.DB.Preload("Items").First(&order, event.OrderID).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading order %d for event: %v", event.OrderID, err)
		return
	}

	switch event.Action {
	case models.EventActionInsert:
		om.Hub.BroadcastOrderInsert(order)
	case models.EventActionUpdate:
		om.Hub.BroadcastOrderUpdate(order)
	}
}
