package models

import "time"

const (
	FreeShippingThreshold int64 = 50000
	FlatShippingFee       int64 = 3000
)

// ShippingFeeFor returns the fee charged for an order of the given total.
func ShippingFeeFor(total int64) int64 {
	if total >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderDelivering OrderStatus = "DELIVERING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCanceled   OrderStatus = "CANCELED"
)

var orderFlow = map[OrderStatus]OrderStatus{
	OrderPending:    OrderProcessing,
	OrderProcessing: OrderDelivering,
	OrderDelivering: OrderCompleted,
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCanceled
}

// CanTransition reports whether an order may move from s to next. Orders
// advance one step at a time and can be canceled until they are terminal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderCanceled {
		return true
	}
	return orderFlow[s] == next
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDelivering, OrderCompleted, OrderCanceled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentKakaoPay     PaymentMethod = "KAKAO PAY"
	PaymentNaverPay     PaymentMethod = "NAVER PAY"
	PaymentToss         PaymentMethod = "TOSS"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentBankTransfer, PaymentKakaoPay, PaymentNaverPay, PaymentToss:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCanceled  PaymentStatus = "CANCELED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type ShippingAddress struct {
	Recipient     string `json:"recipient" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	ZipCode       string `json:"zipCode" binding:"required"`
	Address       string `json:"address" binding:"required"`
	DetailAddress string `json:"detailAddress"`
	Memo          string `json:"memo,omitempty"`
}

type OrderItem struct {
	Product  Product `json:"product"`
	Size     Size    `json:"size"`
	Color    Color   `json:"color"`
	Quantity int     `json:"quantity"`
	Price    int64   `json:"price"`
}

// OrderDraft is the checkout-in-progress built from the cart.
type OrderDraft struct {
	Items           []OrderItem      `json:"items"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod,omitempty"`
	TotalAmount     int64            `json:"totalAmount"`
	ShippingFee     int64            `json:"shippingFee"`
	DiscountAmount  int64            `json:"discountAmount"`
	PointsUsed      int64            `json:"pointsUsed"`
	IdempotencyKey  string           `json:"-"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	TotalAmount     int64           `json:"totalAmount"`
	ShippingFee     int64           `json:"shippingFee"`
	DiscountAmount  int64           `json:"discountAmount"`
	PointsUsed      int64           `json:"pointsUsed"`
	CouponUsed      string          `json:"couponUsed,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
