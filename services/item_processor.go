package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// OrderItemRequest adalah satu baris permintaan dari cart, sudah
// di-bind dan divalidasi bentuknya oleh controller.
type OrderItemRequest struct {
	MenuItemID        uint   `json:"menu_item_id" binding:"required"`
	Quantity          int    `json:"quantity"`
	Notes             string `json:"notes"`
	ModifierOptionIDs []uint `json:"modifier_option_ids"`
	RedeemedRewardID  *uint  `json:"redeemed_reward_id,omitempty"`
}

// ProcessedModifier adalah snapshot opsi modifier yang siap dipersist.
type ProcessedModifier struct {
	ModifierOptionID uint
	NameSnapshot     string
	PriceAdjustment  decimal.Decimal
}

// ProcessedOrderItem adalah line item yang sudah divalidasi dan diberi
// harga, siap dipersist sebagai models.OrderItem.
type ProcessedOrderItem struct {
	MenuItemID          uint
	Quantity            int
	PriceAtPurchase     decimal.Decimal
	TotalItemPrice      decimal.Decimal
	Notes               string
	KdsDestination      string
	NameSnapshot        string
	DescriptionSnapshot string
	Status              string
	Modifiers           []ProcessedModifier
	RedeemedRewardID    *uint
}

// ItemProcessor memvalidasi dan menghitung harga setiap line item
// terhadap katalog. Murni komputasi: tidak ada side effect.
type ItemProcessor struct{}

func NewItemProcessor() *ItemProcessor {
	return &ItemProcessor{}
}

// ProcessOrderItems memproses seluruh cart untuk satu business.
// Item yang membawa RedeemedRewardID dipaksa qty=1 dan harga 0;
// modifier tidak diproses untuk item reward.
func (p *ItemProcessor) ProcessOrderItems(tx *gorm.DB, businessID uint, items []OrderItemRequest) ([]ProcessedOrderItem, error) {
	processed := make([]ProcessedOrderItem, 0, len(items))

	for i, req := range items {
		menuItem, err := p.fetchMenuItem(tx, businessID, req.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}

		if req.RedeemedRewardID != nil {
			utils.InfoLogger.Printf("Item '%s' is a redeemed reward (reward_id=%d), price forced to 0", menuItem.Name, *req.RedeemedRewardID)
			processed = append(processed, ProcessedOrderItem{
				MenuItemID:          menuItem.ID,
				Quantity:            1,
				PriceAtPurchase:     decimal.Zero,
				TotalItemPrice:      decimal.Zero,
				Notes:               req.Notes,
				KdsDestination:      menuItem.KdsDestination,
				NameSnapshot:        "[REWARD] " + menuItem.Name,
				DescriptionSnapshot: menuItem.Description,
				Status:              models.OrderItemStatusPendingKDS,
				RedeemedRewardID:    req.RedeemedRewardID,
			})
			continue
		}

		if req.Quantity < 1 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}

		adjustment, modifiers, err := p.processModifiers(menuItem, req.ModifierOptionIDs)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}

		priceAtPurchase := menuItem.Price.Add(adjustment)
		totalItemPrice := priceAtPurchase.Mul(decimal.NewFromInt(int64(req.Quantity)))

		processed = append(processed, ProcessedOrderItem{
			MenuItemID:          menuItem.ID,
			Quantity:            req.Quantity,
			PriceAtPurchase:     priceAtPurchase,
			TotalItemPrice:      totalItemPrice,
			Notes:               req.Notes,
			KdsDestination:      menuItem.KdsDestination,
			NameSnapshot:        menuItem.Name,
			DescriptionSnapshot: menuItem.Description,
			Status:              models.OrderItemStatusPendingKDS,
			Modifiers:           modifiers,
		})
	}

	return processed, nil
}

// fetchMenuItem memuat menu item berikut grup modifier dan opsi yang
// tersedia, lalu memvalidasi kepemilikan tenant dan ketersediaan.
func (p *ItemProcessor) fetchMenuItem(tx *gorm.DB, businessID, menuItemID uint) (*models.MenuItem, error) {
	var menuItem models.MenuItem
	err := tx.
		Preload("ModifierGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("ModifierGroups.Options", "is_available = ?", true).
		First(&menuItem, menuItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (id=%d)", ErrMenuItemNotFound, menuItemID)
		}
		return nil, err
	}

	if menuItem.BusinessID != businessID {
		return nil, fmt.Errorf("%w: menu item '%s'", ErrWrongBusiness, menuItem.Name)
	}
	if !menuItem.IsAvailable {
		return nil, fmt.Errorf("%w: '%s'", ErrItemUnavailable, menuItem.Name)
	}
	return &menuItem, nil
}

// processModifiers mengakumulasi penyesuaian harga dari opsi terpilih
// dan memvalidasi kardinalitas SEMUA grup pada item, termasuk grup
// tanpa seleksi.
func (p *ItemProcessor) processModifiers(menuItem *models.MenuItem, optionIDs []uint) (decimal.Decimal, []ProcessedModifier, error) {
	adjustment := decimal.Zero
	var modifiers []ProcessedModifier
	selectedPerGroup := make(map[uint]int)

	for _, optionID := range optionIDs {
		var found *models.ModifierOption
		for gi := range menuItem.ModifierGroups {
			for oi := range menuItem.ModifierGroups[gi].Options {
				if menuItem.ModifierGroups[gi].Options[oi].ID == optionID {
					found = &menuItem.ModifierGroups[gi].Options[oi]
					break
				}
			}
			if found != nil {
				break
			}
		}
		if found == nil {
			return decimal.Zero, nil, fmt.Errorf("%w (option_id=%d, item='%s')", ErrInvalidModifierOption, optionID, menuItem.Name)
		}

		selectedPerGroup[found.GroupID]++
		adjustment = adjustment.Add(found.PriceAdjustment)
		modifiers = append(modifiers, ProcessedModifier{
			ModifierOptionID: found.ID,
			NameSnapshot:     found.Name,
			PriceAdjustment:  found.PriceAdjustment,
		})
	}

	for _, group := range menuItem.ModifierGroups {
		selectedCount := selectedPerGroup[group.ID]

		if group.IsRequired && selectedCount < group.MinSelections {
			return decimal.Zero, nil, fmt.Errorf("%w: group '%s' requires at least %d selection(s), got %d",
				ErrModifierSelection, group.Name, group.MinSelections, selectedCount)
		}
		if selectedCount > group.MaxSelections {
			return decimal.Zero, nil, fmt.Errorf("%w: group '%s' allows at most %d selection(s), got %d",
				ErrModifierSelection, group.Name, group.MaxSelections, selectedCount)
		}
		if group.UIType == models.ModifierUIRadio && selectedCount > 1 {
			return decimal.Zero, nil, fmt.Errorf("%w: group '%s' (RADIO) allows a single selection",
				ErrModifierSelection, group.Name)
		}
	}

	return adjustment, modifiers, nil
}
