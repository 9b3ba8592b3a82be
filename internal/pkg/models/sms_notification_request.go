package models

// SmsNotificationRequest is the message published to the notification topic.
// The notification service consumes these verbatim, so the snake_case keys
// below are a contract and must not change.
type SmsNotificationRequest struct {
	Msisdn          string                     `json:"msisdn"`
	SmsDbEventName  string                     `json:"sms_db_event_name"`
	NotifParameters []SmsNotificationParameter `json:"notif_parameters"`
	PatternID       int32                      `json:"notification_pattern_id"`
}

type SmsNotificationParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SmsNotificationRequestPayload is the in-process shape built from a message
// template before it is converted to the wire request above.
type SmsNotificationRequestPayload struct {
	NotificationParameter []NotificationParameter `json:"notificationParameter"`
	PatternID             int32                   `json:"patternId"`
}

type NotificationParameter struct {
	Name  string
	Value string
}
