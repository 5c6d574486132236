package model

type SessionInfo struct {
	SessionID string `json:"sid"`
	ShopID    string `json:"shop_id"`
}
