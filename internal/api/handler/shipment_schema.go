package handler

import (
	"strings"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

type createShipmentRequest struct {
	TrackingNumber  string  `json:"trackingNumber"  validate:"required"`
	SenderAddress   string  `json:"senderAddress"   validate:"required"`
	ReceiverAddress string  `json:"receiverAddress" validate:"required"`
	Weight          float64 `json:"weight"          validate:"required,gt=0"`
	Description     string  `json:"description"`
}

func (r *createShipmentRequest) normalize() {
	r.TrackingNumber = strings.TrimSpace(r.TrackingNumber)
	r.SenderAddress = strings.TrimSpace(r.SenderAddress)
	r.ReceiverAddress = strings.TrimSpace(r.ReceiverAddress)
	r.Description = strings.TrimSpace(r.Description)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PICKED_UP IN_TRANSIT ARRIVED_AT_PORT DELIVERED"`
}

type addEventRequest struct {
	Event       string `json:"event" validate:"required,oneof=PICKED_UP IN_TRANSIT ARRIVED_AT_PORT DELIVERED"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (r *addEventRequest) normalize() {
	r.Location = strings.TrimSpace(r.Location)
	r.Description = strings.TrimSpace(r.Description)
}

type listShipmentsResponse struct {
	Shipments  []domain.Shipment `json:"shipments"`
	Pagination paginationMeta    `json:"pagination"`
}
