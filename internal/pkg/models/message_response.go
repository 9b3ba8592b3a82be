package models

// MessageResponse contains the SMS pattern ID and the parameters it expects
type MessageResponse struct {
	MessageID  int32
	Parameters []string
}
