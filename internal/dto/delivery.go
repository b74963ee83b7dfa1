package dto

// CancelDeliveryRequest is sent by the delivery subsystem when a dispatch is cancelled.
type CancelDeliveryRequest struct {
	Reason string `json:"reason" binding:"required"`
}
