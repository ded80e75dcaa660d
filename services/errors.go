package services

import (
	"errors"
	"fmt"
)

// Kategori error inti. Controllers memetakan kategori ke status HTTP
// dengan errors.Is; pesan spesifik dibungkus dengan %w.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")
)

// Sentinel spesifik per aturan bisnis.
var (
	ErrBusinessNotFound  = fmt.Errorf("business %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderItemNotFound = fmt.Errorf("order item %w", ErrNotFound)
	ErrMenuItemNotFound  = fmt.Errorf("menu item %w", ErrNotFound)
	ErrCustomerNotFound  = fmt.Errorf("customer %w", ErrNotFound)
	ErrRewardNotFound    = fmt.Errorf("reward %w", ErrNotFound)

	ErrBusinessInactive      = fmt.Errorf("%w: business is not active", ErrBadRequest)
	ErrOrderingDisabled      = fmt.Errorf("%w: ordering module is not active for this business", ErrBadRequest)
	ErrEmptyOrder            = fmt.Errorf("%w: order must contain at least one valid item", ErrBadRequest)
	ErrWrongBusiness         = fmt.Errorf("%w: entity does not belong to this business", ErrBadRequest)
	ErrItemUnavailable       = fmt.Errorf("%w: menu item is not available", ErrBadRequest)
	ErrInvalidQuantity       = fmt.Errorf("%w: quantity must be at least 1", ErrBadRequest)
	ErrInvalidModifierOption = fmt.Errorf("%w: modifier option is not valid or not available for this item", ErrBadRequest)
	ErrModifierSelection     = fmt.Errorf("%w: modifier group selection rules violated", ErrBadRequest)
	ErrInvalidReward         = fmt.Errorf("%w: reward is not valid or not active", ErrBadRequest)
	ErrRewardNeedsCustomer   = fmt.Errorf("%w: rewards require an identified customer", ErrBadRequest)
	ErrInsufficientPoints    = fmt.Errorf("%w: insufficient points", ErrBadRequest)
	ErrInvalidOrderStatus    = fmt.Errorf("%w: order status does not allow this operation", ErrBadRequest)
	ErrInvalidItemStatus     = fmt.Errorf("%w: order item status does not allow this operation", ErrBadRequest)
)
